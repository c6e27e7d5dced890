// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awssso/internal/attrs"
	awsx "github.com/tfctl/awssso/internal/aws"
	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/log"
	"github.com/tfctl/awssso/internal/meta"
	"github.com/tfctl/awssso/internal/output"
	"github.com/tfctl/awssso/internal/service"
)

// BuildAttrs constructs an AttrList from defaults plus any --attrs value.
func BuildAttrs(cmd *cli.Command, defaults string) (attrs.AttrList, error) {
	var al attrs.AttrList
	if err := al.Set(defaults); err != nil {
		return nil, err
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	return al, nil
}

// DumpSchemaIfRequested writes the attr keys of t when --schema is set and
// reports whether it did.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if t == nil || !cmd.Bool("schema") {
		return false
	}
	output.DumpSchema(stdout(cmd), t)
	return true
}

// GetMeta returns the meta.Meta stored in the command's Metadata, looking up
// through parent commands. If missing it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil {
		return meta.Meta{}
	}
	for _, c := range cmd.Lineage() {
		if c.Metadata == nil {
			continue
		}
		if m, ok := c.Metadata["meta"].(meta.Meta); ok {
			return m
		}
	}
	return meta.Meta{}
}

// Settings resolves the AWS settings from the global flags.
func Settings(cmd *cli.Command) service.Settings {
	return service.Settings{
		Profile:  awsx.ResolveProfile(cmd.String("profile")),
		Region:   cmd.String("region"),
		Endpoint: cmd.String("endpoint"),
	}
}

// OpenService builds the Service for cmd. Remediation messages go to the
// root command's error writer.
func OpenService(ctx context.Context, cmd *cli.Command, opts ...credguard.Option) (*service.Service, error) {
	s := Settings(cmd)
	log.Debugf("opening service: profile=%s, region=%s, endpoint=%s", s.Profile, s.Region, s.Endpoint)

	opts = append([]credguard.Option{credguard.WithStderr(stderr(cmd))}, opts...)
	return GetMeta(cmd).Open(ctx, s, opts...)
}

// parseJSONObject decodes a command line document such as an item or key.
func parseJSONObject(arg, what string) (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(arg), &doc); err != nil {
		return nil, fmt.Errorf("invalid %s JSON: %w", what, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("invalid %s JSON: expected an object", what)
	}
	return doc, nil
}

// requireArgs checks the positional argument count.
func requireArgs(cmd *cli.Command, n int) error {
	if cmd.NArg() != n {
		return fmt.Errorf("%s expects %d argument(s), got %d; usage: %s",
			cmd.Name, n, cmd.NArg(), cmd.UsageText)
	}
	return nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
