// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awssso/internal/service"
)

func whoamiCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := NewQueryActionRunner(
		"whoami",
		reflect.TypeOf(service.Identity{}),
		"account_id:account,user_arn:arn,profile",
		func(ctx context.Context, cmd *cli.Command, svc *service.Service) (service.Identity, error) {
			return svc.CallerIdentity(ctx)
		},
	)
	return runner.Run(ctx, cmd)
}

func whoamiCommandBuilder() *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "whoami",
		Usage:     "show the identity behind the active profile",
		UsageText: "awssso whoami [options]",
		Action:    whoamiCommandAction,
	}).Build()
}
