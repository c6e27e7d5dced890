// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package api serves a small read-only HTTP view of the AWS account behind
// a profile. Credential failures map to 503 on /health and 401 elsewhere,
// with the remediation text as the response detail.
package api
