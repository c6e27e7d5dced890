// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for awssso's user
// configuration. The configuration is an optional YAML document located in
// the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/awssso.yaml or $HOME/.config/awssso.yaml
//   - macOS: $HOME/Library/Application Support/awssso.yaml
//   - Windows: %APPDATA%/awssso.yaml
//
// AWSSSO_CFG_FILE overrides the location.
package config
