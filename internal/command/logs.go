// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awssso/internal/log"
)

func logsCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "CloudWatch Logs",
		Commands: []*cli.Command{
			{
				Name:      "put",
				Usage:     "write one event, creating the group and stream as needed",
				UsageText: "awssso logs put GROUP STREAM MESSAGE",
				Action:    logsPutAction,
			},
		},
	}
}

func logsPutAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 3); err != nil {
		return err
	}
	group, stream := cmd.Args().Get(0), cmd.Args().Get(1)

	svc, err := OpenService(ctx, cmd)
	if err != nil {
		return err
	}
	if err := svc.PutLogEvent(ctx, group, stream, cmd.Args().Get(2)); err != nil {
		return err
	}
	log.Debugf("log event written: group=%s, stream=%s", group, stream)
	return nil
}
