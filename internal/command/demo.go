// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/awssso/internal/log"
)

// demoShown caps the names printed per section.
const demoShown = 5

func demoCommandBuilder() *cli.Command {
	return &cli.Command{
		Name:      "demo",
		Usage:     "check the identity, then list buckets and tables",
		UsageText: "awssso demo",
		Action:    demoAction,
	}
}

// section is the outcome of one listing step.
type section struct {
	names []string
	err   error
}

func demoAction(ctx context.Context, cmd *cli.Command) error {
	w := stdout(cmd)
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "awssso demo")
	fmt.Fprintln(w, rule)

	svc, err := OpenService(ctx, cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "\n1. Checking AWS identity...")
	id, err := svc.CallerIdentity(ctx)
	if err != nil {
		// The remediation has already gone to stderr.
		fmt.Fprintln(w, "   Authentication failed")
		return err
	}
	fmt.Fprintf(w, "   Logged in as: %s\n", id.UserARN)
	fmt.Fprintf(w, "   Account ID: %s\n", id.AccountID)
	fmt.Fprintf(w, "   Profile: %s\n", id.Profile)

	// Neither listing cancels the other so both sections always print.
	var buckets, tables section
	var g errgroup.Group
	g.Go(func() error {
		buckets.names, buckets.err = svc.ListBuckets(ctx)
		return nil
	})
	g.Go(func() error {
		tables.names, tables.err = svc.ListTables(ctx)
		return nil
	})
	_ = g.Wait()

	fmt.Fprintln(w, "\n2. Listing S3 buckets...")
	printSection(w, "buckets", buckets)
	fmt.Fprintln(w, "\n3. Listing DynamoDB tables...")
	printSection(w, "tables", tables)

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "All checks completed")
	fmt.Fprintln(w, rule)

	return nil
}

func printSection(w io.Writer, noun string, s section) {
	if s.err != nil {
		log.Debugf("demo section failed: noun=%s, err=%v", noun, s.err)
		fmt.Fprintf(w, "   Error: %v\n", s.err)
		return
	}

	fmt.Fprintf(w, "   Found %d %s:\n", len(s.names), noun)
	for i, name := range s.names {
		if i == demoShown {
			fmt.Fprintf(w, "      ... and %d more\n", len(s.names)-demoShown)
			break
		}
		fmt.Fprintf(w, "      - %s\n", name)
	}
}
