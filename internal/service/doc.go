// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package service is the catalog of AWS operations awssso exposes. Each
// method performs a single SDK call (or a short fixed sequence for CloudWatch
// Logs), reshapes the response into plain values, and runs under the
// credential-error normalizer so an expired SSO session always surfaces as
// *credguard.CredentialError.
package service
