// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK v2 configuration for a named profile and builds
// the service clients awssso uses. Each client is exposed through a narrow
// interface so callers can substitute fakes.
package aws
