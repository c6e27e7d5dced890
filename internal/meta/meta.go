// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/awssso/internal/config"
	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/service"
)

// ServiceFactory opens a Service for the given settings.
type ServiceFactory func(context.Context, service.Settings, ...credguard.Option) (*service.Service, error)

// Meta contains runtime metadata shared by commands: CLI arguments, loaded
// configuration, the root context and how to reach AWS.
type Meta struct {
	Args       []string
	Config     config.Type
	Context    context.Context
	NewService ServiceFactory
}

// Open calls NewService, falling back to service.Open when unset.
func (m Meta) Open(ctx context.Context, s service.Settings, opts ...credguard.Option) (*service.Service, error) {
	if m.NewService == nil {
		return service.Open(ctx, s, opts...)
	}
	return m.NewService(ctx, s, opts...)
}
