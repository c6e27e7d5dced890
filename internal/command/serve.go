// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awssso/internal/api"
	"github.com/tfctl/awssso/internal/credguard"
	"github.com/tfctl/awssso/internal/log"
)

func serveCommandBuilder(ns, cfgPath string) *cli.Command {
	addr := &cli.StringFlag{
		Name:  "addr",
		Usage: "listen address",
		Value: api.DefaultAddr,
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWSSSO_ADDR"),
		),
	}
	if cfgPath != "" {
		addr = NameSpacedValueChainFlagFromConfigFile("serve", cfgPath, addr)
	}

	return &cli.Command{
		Name:      "serve",
		Usage:     "serve buckets, tables and health over HTTP",
		UsageText: "awssso serve [--addr :8000]",
		Flags:     []cli.Flag{addr},
		Action:    serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	collector := api.NewCollector()
	svc, err := OpenService(ctx, cmd, credguard.WithObserver(collector.Observe))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv, err := api.NewServer(svc, collector, reg)
	if err != nil {
		return err
	}

	log.Debugf("serving: profile=%s, addr=%s", svc.Profile(), cmd.String("addr"))
	return srv.ListenAndServe(ctx, cmd.String("addr"))
}
