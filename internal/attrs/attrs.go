// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/awssso/internal/log"
)

var lengthRe = regexp.MustCompile(`-?\d+`)

// Attr is one column of output. Key is a gjson path into each result row.
type Attr struct {
	// Key is the path to extract from the row.
	Key string `yaml:"key" json:"Key"`
	// Include is false for attrs only used for filtering and sorting.
	Include bool `yaml:"include" json:"Include"`
	// OutputKey names the value in output and is the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// TransformSpec is applied to the value before output.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attribute's transform spec to a value and returns the
// transformed result.
//
// Spec letters: h (bytes to human size, numbers only), t (RFC3339 to local
// time), T (RFC3339 to time ago), l/L and u/U (case), and an integer for
// length. A negative length elides the middle of the value.
func (a *Attr) Transform(value interface{}) interface{} {
	if a.TransformSpec == "" {
		return value
	}

	if strings.Contains(a.TransformSpec, "h") {
		if n, ok := value.(float64); ok && n >= 0 {
			value = humanize.Bytes(uint64(n))
			log.Tracef("size human: result=%s", value)
		}
	}

	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		result = transformTime(result, strings.Contains(a.TransformSpec, "T"))
	}

	// The last case letter wins so that an attr's own spec overrides a
	// prepended global one: --attrs '*::U,key::l' is lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
		log.Tracef("case lower: result=%s", result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
		log.Tracef("case upper: result=%s", result)
	}

	// Likewise the last length wins.
	if match := lengthRe.FindAllString(a.TransformSpec, -1); len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		result = truncate(result, l)
	}

	return result
}

func transformTime(value string, ago bool) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}
	if ago {
		return humanize.Time(t)
	}
	return t.Local().Format("2006-01-02T15:04:05MST")
}

// truncate cuts s to l bytes. A negative l keeps both ends and joins them
// with "..".
func truncate(s string, l int) string {
	abs := int(math.Abs(float64(l)))
	if len(s) <= abs {
		return s
	}
	if l >= 0 {
		return s[:l]
	}
	side := abs/2 - 1
	if side < 1 {
		return s[:abs]
	}
	return s[:side] + ".." + s[len(s)-side:]
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Set parses a comma separated --attrs value and merges it into the list.
// Each spec is key[:outputKey[:transform]]. A leading ! keeps the attr for
// filtering and sorting but hides it from output. A key of * carries a
// transform applied to every attr (see SetGlobalTransformSpec).
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		fields := strings.Split(spec, ":")
		if len(fields) > transformIdx+1 {
			return fmt.Errorf("invalid attr spec %q: too many fields", spec)
		}

		attr := Attr{Include: true}
		attr.Key = strings.TrimPrefix(strings.TrimSpace(fields[keyIdx]), ".")
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec %q: empty key", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		// The output key defaults to the last segment of the path.
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		} else {
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("attr parsed: key=%s, outputKey=%s, include=%v, spec=%s",
			attr.Key, attr.OutputKey, attr.Include, attr.TransformSpec)

		// A spec naming an existing attr (a command default or a repeat)
		// updates it in place.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prepends the transform of the * attr, if any, to
// every attr in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for i := range *a {
		if (*a)[i].Key == "*" {
			spec = (*a)[i].TransformSpec
			break
		}
	}
	if spec == "" {
		return nil
	}
	log.Debugf("global spec: spec=%s", spec)

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	return nil
}

// Included returns the attrs that appear in output.
func (a AttrList) Included() AttrList {
	out := make(AttrList, 0, len(a))
	for _, attr := range a {
		if attr.Include {
			out = append(out, attr)
		}
	}
	return out
}

// String returns the list in --attrs form.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }

// MustParse builds an AttrList from a spec known to be valid. It is meant for
// command defaults.
func MustParse(spec string) AttrList {
	var a AttrList
	if err := a.Set(spec); err != nil {
		panic(err)
	}
	return a
}
