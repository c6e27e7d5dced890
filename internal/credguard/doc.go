// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package credguard normalizes AWS credential failures. An operation run
// through a Normalizer either returns its own result, returns its own error
// untouched, or, when the SSO session or temporary credentials have expired,
// returns a *CredentialError after printing the re-authentication command to
// stderr.
package credguard
