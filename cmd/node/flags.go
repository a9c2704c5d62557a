// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML file describing the simulated network's genesis balances",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2023",
		Usage: "admin/metrics API listening address",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0=crit .. 5=trace)",
	}

	nodesFlag = cli.IntFlag{
		Name:  "nodes",
		Value: 4,
		Usage: "number of simulated nodes, used when -config is not given",
	}
	roundsFlag = cli.IntFlag{
		Name:  "rounds",
		Value: 20,
		Usage: "number of simulated rounds to run before exiting",
	}
	workersFlag = cli.IntFlag{
		Name:  "workers",
		Value: 4,
		Usage: "number of concurrent proof-applying workers",
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "PRNG seed picking each round's sender/receiver pair",
	}
)
