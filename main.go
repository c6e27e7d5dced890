// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tfctl/awssso/internal/command"
	"github.com/tfctl/awssso/internal/config"
	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/log"
	"github.com/tfctl/awssso/internal/version"
)

// Exit codes.
const (
	exitOK         = 0
	exitInit       = 1
	exitCommand    = 2
	exitCredential = 3
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

// rootValueFlags are the root flags that consume the following argument.
var rootValueFlags = map[string]bool{
	"--profile": true, "-p": true,
	"--region": true, "-r": true,
	"--endpoint": true,
}

// handleVersion checks for --version/-v among the root flags, before the
// first command, and returns whether it was handled.
func handleVersion(w io.Writer, args []string) bool {
	for i := 1; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--version" || a == "-v":
			fmt.Fprintln(w, version.String())
			return true
		case !strings.HasPrefix(a, "-"):
			return false
		case rootValueFlags[a]:
			i++
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// hasHelp reports whether --help or -h appears anywhere in args.
func hasHelp(args []string) bool {
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return true
		}
	}
	return false
}

// expandArgSet replaces the first @name argument after the command with the
// words of the config list "<command>.<name>". An unknown set expands to
// nothing.
func expandArgSet(args []string, lookup func(key string) ([]string, error)) []string {
	if len(args) < 3 {
		return args
	}

	for i := 2; i < len(args); i++ {
		if !strings.HasPrefix(args[i], "@") || len(args[i]) == 1 {
			continue
		}

		key := args[1] + "." + args[i][1:]
		entries, err := lookup(key)
		if err != nil {
			log.Debugf("arg set not found: key=%s, err=%v", key, err)
		}

		var expanded []string
		for _, entry := range entries {
			expanded = append(expanded, strings.Fields(entry)...)
		}
		log.Debugf("arg set expanded: key=%s, args=%v", key, expanded)

		out := make([]string, 0, len(args)-1+len(expanded))
		out = append(out, args[:i]...)
		out = append(out, expanded...)
		return append(out, args[i+1:]...)
	}

	return args
}

// exitCode maps a command error to the process exit code, reporting it on
// w. Credential failures have already printed their remediation.
func exitCode(w io.Writer, err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, credguard.ErrCredentials):
		log.Debugf("credential failure: err=%v", err)
		return exitCredential
	default:
		fmt.Fprintln(w, err)
		log.Debugf("app run err: err=%v", err)
		return exitCommand
	}
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return exitInit
	}

	return exitCode(os.Stderr, app.Run(ctx, args))
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(os.Stdout, args) {
		return exitOK
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip arg set expansion and let the CLI
	// handle it.
	if !hasHelp(args) {
		args = expandArgSet(args, func(key string) ([]string, error) {
			return config.GetStringSlice(key)
		})
	}

	return initAndRunApp(args)
}
