// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awssso/internal/log"
	"github.com/tfctl/awssso/internal/service"
)

// Sent is printed by commands that publish a single message.
type Sent struct {
	MessageID string `json:"message_id"`
}

func sqsCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:  "sqs",
		Usage: "SQS queues",
		Commands: []*cli.Command{
			(&QueryCommandBuilder{
				Name:      "send",
				Usage:     "send a message",
				UsageText: "awssso sqs send QUEUE_URL BODY [--attr k=v ...] [options]",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  "attr",
						Usage: "message attribute as key=value. May be repeated",
					},
				},
				Action: sqsSendAction,
			}).Build(),
			(&QueryCommandBuilder{
				Name:      "recv",
				Usage:     "receive messages, waiting for them to arrive",
				UsageText: "awssso sqs recv QUEUE_URL [--max N] [--wait SECONDS] [options]",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "max",
						Usage: "maximum number of messages to receive",
						Value: service.DefaultMaxMessages,
						Validator: func(value int) error {
							return FlagValidators(value, RangeValidator(1, service.DefaultMaxMessages))
						},
					},
					&cli.IntFlag{
						Name:  "wait",
						Usage: "long-poll wait in seconds",
						Value: service.DefaultWaitSeconds,
						Validator: func(value int) error {
							return FlagValidators(value, RangeValidator(0, service.DefaultWaitSeconds))
						},
					},
				},
				Action: sqsRecvAction,
			}).Build(),
			{
				Name:      "delete",
				Usage:     "delete a received message",
				UsageText: "awssso sqs delete QUEUE_URL RECEIPT_HANDLE",
				Action:    sqsDeleteAction,
			},
		},
	}
}

// parseMessageAttrs turns k=v pairs into a map. Later pairs win.
func parseMessageAttrs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	attrs := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --attr %q: expected key=value", pair)
		}
		attrs[k] = v
	}
	return attrs, nil
}

func sqsSendAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}
	queueURL, body := cmd.Args().Get(0), cmd.Args().Get(1)
	msgAttrs, err := parseMessageAttrs(cmd.StringSlice("attr"))
	if err != nil {
		return err
	}

	return NewQueryActionRunner(
		"sqs send",
		reflect.TypeOf(Sent{}),
		"message_id",
		func(ctx context.Context, cmd *cli.Command, svc *service.Service) (Sent, error) {
			id, err := svc.SendMessage(ctx, queueURL, body, msgAttrs)
			return Sent{MessageID: id}, err
		},
	).Run(ctx, cmd)
}

func sqsRecvAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 1); err != nil {
		return err
	}

	return NewQueryActionRunner(
		"sqs recv",
		reflect.TypeOf(service.Message{}),
		"message_id:id,body,receipt_handle:receipt:-24",
		func(ctx context.Context, cmd *cli.Command, svc *service.Service) ([]service.Message, error) {
			return svc.ReceiveMessages(ctx, cmd.Args().Get(0),
				int32(cmd.Int("max")), int32(cmd.Int("wait")))
		},
	).Run(ctx, cmd)
}

func sqsDeleteAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}

	svc, err := OpenService(ctx, cmd)
	if err != nil {
		return err
	}
	if err := svc.DeleteMessage(ctx, cmd.Args().Get(0), cmd.Args().Get(1)); err != nil {
		return err
	}
	log.Debugf("message deleted: queue=%s", cmd.Args().Get(0))
	return nil
}
