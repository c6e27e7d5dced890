// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the awssso command tree. It wires flags,
// validators and actions for each AWS service and for the HTTP server.
package command
