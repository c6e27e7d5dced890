// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awssso/internal/service"
)

func snsCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:  "sns",
		Usage: "SNS topics",
		Commands: []*cli.Command{
			(&QueryCommandBuilder{
				Name:      "publish",
				Usage:     "publish a message to a topic",
				UsageText: "awssso sns publish TOPIC_ARN MESSAGE [--subject S] [options]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "subject",
						Usage: "message subject, used by email subscriptions",
					},
				},
				Action: snsPublishAction,
			}).Build(),
		},
	}
}

func snsPublishAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}
	topic, message := cmd.Args().Get(0), cmd.Args().Get(1)

	return NewQueryActionRunner(
		"sns publish",
		reflect.TypeOf(Sent{}),
		"message_id",
		func(ctx context.Context, cmd *cli.Command, svc *service.Service) (Sent, error) {
			id, err := svc.Publish(ctx, topic, message, cmd.String("subject"))
			return Sent{MessageID: id}, err
		},
	).Run(ctx, cmd)
}
