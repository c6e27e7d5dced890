// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awssso/internal/config"
	"github.com/tfctl/awssso/internal/meta"
	"github.com/tfctl/awssso/internal/service"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the awssso
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load(ns)
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Namespace = ns

	return NewApp(meta.Meta{
		Args:       args,
		Config:     cfg,
		Context:    ctx,
		NewService: service.Open,
	}), nil
}

// NewApp builds the command tree around m.
func NewApp(m meta.Meta) *cli.Command {
	ns, cfgPath := m.Config.Namespace, m.Config.Source

	app := &cli.Command{
		Name:                  "awssso",
		Usage:                 "AWS SSO aware client for S3, DynamoDB, SQS, SNS and CloudWatch Logs",
		EnableShellCompletion: true,
		// --attr values may contain commas.
		DisableSliceFlagSeparator: true,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: []cli.Flag{
			NewProfileFlag(ns, cfgPath),
			NewRegionFlag(ns, cfgPath),
			NewEndpointFlag(ns, cfgPath),
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "awssso version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		whoamiCommandBuilder(),
		s3CommandBuilder(),
		ddbCommandBuilder(),
		sqsCommandBuilder(),
		snsCommandBuilder(),
		logsCommandBuilder(),
		serveCommandBuilder(ns, cfgPath),
		demoCommandBuilder(),
	)

	// Make sure flags are sorted for the --help text.
	sortFlags(app.Commands)

	return app
}

func sortFlags(cmds []*cli.Command) {
	for _, cmd := range cmds {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
		sortFlags(cmd.Commands)
	}
}
