// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// maxSchemaDepth limits how far nested structs are walked.
const maxSchemaDepth = 1

// DumpSchema writes the sorted attr keys available for rows of type typ,
// taken from its json tags. Nested struct fields are written in dotted form.
func DumpSchema(w io.Writer, typ reflect.Type) {
	for typ.Kind() == reflect.Ptr || typ.Kind() == reflect.Slice {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		fmt.Fprintln(w, scalarKey)
		return
	}

	keys := schemaKeys("", typ, 0)
	if len(keys) == 0 {
		log.Debugf("no tags found: type=%s", typ.Name())
		return
	}

	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintln(w, key)
	}
}

// schemaKeys walks typ collecting json tag names under holder.
func schemaKeys(holder string, typ reflect.Type, depth int) []string {
	keys := make([]string, 0, typ.NumField())

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		if holder != "" {
			name = holder + "." + name
		}
		keys = append(keys, name)

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if depth < maxSchemaDepth && ft.Kind() == reflect.Struct {
			keys = append(keys, schemaKeys(name, ft, depth+1)...)
		}
	}

	return keys
}
