// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awssso/internal/log"
	"github.com/tfctl/awssso/internal/service"
)

// ErrItemNotFound is returned by ddb get when the key matches no item.
var ErrItemNotFound = errors.New("item not found")

func ddbCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:  "ddb",
		Usage: "DynamoDB tables and items",
		Commands: []*cli.Command{
			(&QueryCommandBuilder{
				Name:      "tables",
				Usage:     "list tables",
				UsageText: "awssso ddb tables [options]",
				Action:    ddbTablesAction,
			}).Build(),
			{
				Name:      "put",
				Usage:     "write an item given as a JSON object",
				UsageText: `awssso ddb put TABLE '{"pk":"user#1","name":"Ada"}'`,
				Action:    ddbPutAction,
			},
			(&QueryCommandBuilder{
				Name:      "get",
				Usage:     "read the item with the given primary key",
				UsageText: `awssso ddb get TABLE '{"pk":"user#1"}' [options]`,
				Action:    ddbGetAction,
			}).Build(),
			(&QueryCommandBuilder{
				Name:      "query",
				Usage:     "query a table by key condition",
				UsageText: `awssso ddb query TABLE 'pk = :pk' '{":pk":"user#1"}' [options]`,
				Action:    ddbQueryAction,
			}).Build(),
		},
	}
}

func ddbTablesAction(ctx context.Context, cmd *cli.Command) error {
	return NewQueryActionRunner(
		"ddb tables",
		reflect.TypeOf(""),
		"",
		func(ctx context.Context, cmd *cli.Command, svc *service.Service) ([]string, error) {
			return svc.ListTables(ctx)
		},
	).Run(ctx, cmd)
}

func ddbPutAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}
	table := cmd.Args().Get(0)
	item, err := parseJSONObject(cmd.Args().Get(1), "item")
	if err != nil {
		return err
	}

	svc, err := OpenService(ctx, cmd)
	if err != nil {
		return err
	}
	if err := svc.PutItem(ctx, table, item); err != nil {
		return err
	}
	log.Debugf("item written: table=%s", table)
	return nil
}

func ddbGetAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 2); err != nil {
		return err
	}
	table := cmd.Args().Get(0)
	key, err := parseJSONObject(cmd.Args().Get(1), "key")
	if err != nil {
		return err
	}

	return NewQueryActionRunner(
		"ddb get",
		nil,
		"",
		func(ctx context.Context, cmd *cli.Command, svc *service.Service) (map[string]any, error) {
			item, err := svc.GetItem(ctx, table, key)
			if err != nil {
				return nil, err
			}
			if item == nil {
				return nil, fmt.Errorf("%w: table=%s, key=%s", ErrItemNotFound, table, cmd.Args().Get(1))
			}
			return item, nil
		},
	).Run(ctx, cmd)
}

func ddbQueryAction(ctx context.Context, cmd *cli.Command) error {
	if err := requireArgs(cmd, 3); err != nil {
		return err
	}
	table, cond := cmd.Args().Get(0), cmd.Args().Get(1)
	values, err := parseJSONObject(cmd.Args().Get(2), "expression values")
	if err != nil {
		return err
	}

	return NewQueryActionRunner(
		"ddb query",
		nil,
		"",
		func(ctx context.Context, cmd *cli.Command, svc *service.Service) ([]map[string]any, error) {
			return svc.Query(ctx, table, cond, values)
		},
	).Run(ctx, cmd)
}
