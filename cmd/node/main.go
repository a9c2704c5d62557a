// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Command node is a single-process simulation of a scale-out ledger's
// proof construction and verification core: it seeds a network of
// nodes from a genesis config, then relays value transactions between
// them, each hand-off driving proof.Build, Encode, Decode, Verify and
// ApplyUpdates exactly as a real node's inbound/outbound pipeline
// would.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	isatty "github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/meshledger/scaleout/admin"
	"github.com/meshledger/scaleout/log"
	"github.com/meshledger/scaleout/metrics"
)

var version = "dev"

func main() {
	app := cli.App{
		Version: version,
		Name:    "node",
		Usage:   "scale-out ledger proof construction/verification node",
		Flags: []cli.Flag{
			configFlag,
			adminAddrFlag,
			verbosityFlag,
			nodesFlag,
			roundsFlag,
			workersFlag,
			seedFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// verbosityToLevel maps the 0-5 -verbosity flag onto this package's
// slog levels, crit being the quietest and trace the loudest.
func verbosityToLevel(v int) slog.Level {
	switch {
	case v <= 0:
		return log.LevelCrit
	case v == 1:
		return log.LevelError
	case v == 2:
		return log.LevelWarn
	case v == 3:
		return log.LevelInfo
	case v == 4:
		return log.LevelDebug
	default:
		return log.LevelTrace
	}
}

func defaultAction(ctx *cli.Context) error {
	logLevel := &slog.LevelVar{}
	logLevel.Set(verbosityToLevel(ctx.Int(verbosityFlag.Name)))
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, logLevel, useColor)))

	sessionID := uuid.New()
	log.Info("starting node", "session", sessionID, "version", version)

	metrics.InitializePrometheusMetrics()

	var cfg *NetworkConfig
	var err error
	if path := ctx.String(configFlag.Name); path != "" {
		cfg, err = loadNetworkConfig(path)
	} else {
		cfg = defaultNetworkConfig(ctx.Int(nodesFlag.Name), 1_000_000)
	}
	if err != nil {
		return errors.Wrap(err, "load network config")
	}
	if len(cfg.Nodes) < 2 {
		return errors.New("network config must define at least 2 nodes")
	}

	stats := &simStats{}
	adminAddr := ctx.String(adminAddrFlag.Name)
	url, stop, err := admin.StartServer(adminAddr, logLevel, stats.snapshot)
	if err != nil {
		return errors.Wrap(err, "start admin server")
	}
	defer stop()
	log.Info("admin server listening", "url", url)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		runSolo(cfg, ctx.Int(workersFlag.Name), ctx.Int(roundsFlag.Name), ctx.Int64(seedFlag.Name), stats)
	}()

	select {
	case <-done:
		snap := stats.snapshot()
		log.Info("simulation finished", "stats", snap)
	case <-interrupt:
		log.Info("interrupted, shutting down")
	}
	return nil
}
