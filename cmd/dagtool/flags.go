// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	committeeFlag = cli.StringFlag{
		Name:  "committee",
		Usage: "path to the committee YAML file",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML file overriding block limits",
	}

	// keygen
	countFlag = cli.IntFlag{
		Name:  "count",
		Value: 4,
		Usage: "number of authorities to generate",
	}
	epochFlag = cli.Uint64Flag{
		Name:  "epoch",
		Usage: "committee epoch",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Value: ".",
		Usage: "output directory for keys and committee file",
	}

	// sign
	keyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "path to the protocol private key file",
	}
	roundFlag = cli.Uint64Flag{
		Name:  "round",
		Usage: "block round",
	}
	authorFlag = cli.Uint64Flag{
		Name:  "author",
		Usage: "authority index of the block author",
	}
	timestampFlag = cli.Uint64Flag{
		Name:  "timestamp",
		Usage: "block timestamp in unix milliseconds (defaults to now)",
	}
	ancestorFlag = cli.StringSliceFlag{
		Name:  "ancestor",
		Usage: "ancestor reference as round:author:digest, repeatable",
	}
	txFlag = cli.StringSliceFlag{
		Name:  "tx",
		Usage: "hex encoded transaction, repeatable",
	}

	// verify
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "dump the decoded block structure",
	}

	// serve
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the block database",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 64,
		Usage: "megabytes of ram allocated to the block cache",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Usage: "all queries with duration(ms) above the threshold will be logged, 0 disables",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Usage: "admin service listening address, disabled if empty",
	}
	noProgressFlag = cli.BoolFlag{
		Name:  "no-progress",
		Usage: "do not print the progress bar",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection, served at /metrics of the API",
	}
)
