// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output shapes command results and writes them as a text table,
// JSON, YAML or the raw JSON encoding.
package output
