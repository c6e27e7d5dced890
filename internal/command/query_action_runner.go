// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awssso/internal/output"
	"github.com/tfctl/awssso/internal/service"
)

// FetchFunc produces the result a command prints. svc is already bound to
// the resolved profile.
type FetchFunc[T any] func(context.Context, *cli.Command, *service.Service) (T, error)

// QueryActionRunner[T] encapsulates the common action pattern for commands
// that print a result set. It handles schema dumping, BuildAttrs, opening the
// Service and output emission, with data fetching provided by FetchFn.
type QueryActionRunner[T any] struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs string
	FetchFn      FetchFunc[T]
}

// Run executes the action with the provided context and command.
func (qar *QueryActionRunner[T]) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	log.Debugf("executing action: cmd=%s, args=%v", qar.CommandName, cmd.Args().Slice())

	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	attrs, err := BuildAttrs(cmd, qar.DefaultAttrs)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", attrs.String())

	svc, err := OpenService(ctx, cmd)
	if err != nil {
		return err
	}

	results, err := qar.FetchFn(ctx, cmd, svc)
	if err != nil {
		return err
	}

	return output.SliceDiceSpit(cmd, results, attrs)
}

// NewQueryActionRunner creates a QueryActionRunner with the provided
// configuration.
func NewQueryActionRunner[T any](
	commandName string,
	schemaType reflect.Type,
	defaultAttrs string,
	fetchFn FetchFunc[T],
) *QueryActionRunner[T] {
	return &QueryActionRunner[T]{
		CommandName:  commandName,
		SchemaType:   schemaType,
		DefaultAttrs: defaultAttrs,
		FetchFn:      fetchFn,
	}
}
