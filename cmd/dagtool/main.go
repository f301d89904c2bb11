// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// dagtool manages keys, committees and blocks of a DAG consensus network,
// and serves a block store over HTTP.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	return &cli.App{
		Version: fullVersion(),
		Name:    "dagtool",
		Usage:   "DAG consensus block tool",
		Flags: []cli.Flag{
			verbosityFlag,
			jsonLogsFlag,
		},
		Before: func(ctx *cli.Context) error {
			return initLogger(ctx)
		},
		Commands: []cli.Command{
			{
				Name:  "keygen",
				Usage: "generate protocol keys and a local committee file",
				Flags: []cli.Flag{
					countFlag,
					epochFlag,
					outFlag,
				},
				Action: keygenAction,
			},
			{
				Name:  "genesis",
				Usage: "print the genesis block references of a committee",
				Flags: []cli.Flag{
					committeeFlag,
				},
				Action: genesisAction,
			},
			{
				Name:  "sign",
				Usage: "build and sign a block, print it hex encoded",
				Flags: []cli.Flag{
					committeeFlag,
					configFlag,
					keyFlag,
					roundFlag,
					authorFlag,
					timestampFlag,
					ancestorFlag,
					txFlag,
				},
				Action: signAction,
			},
			{
				Name:      "verify",
				Usage:     "verify a hex encoded signed block",
				ArgsUsage: "<hex|file>",
				Flags: []cli.Flag{
					committeeFlag,
					configFlag,
					dumpFlag,
				},
				Action: verifyAction,
			},
			{
				Name:  "serve",
				Usage: "run the block store API",
				Flags: []cli.Flag{
					committeeFlag,
					configFlag,
					dataDirFlag,
					cacheFlag,
					apiAddrFlag,
					apiCorsFlag,
					enableAPILogsFlag,
					apiSlowQueriesThresholdFlag,
					pprofFlag,
					adminAddrFlag,
					enableMetricsFlag,
				},
				Action: serveAction,
			},
			{
				Name:  "check",
				Usage: "re-verify the blocks of a data dir and report missing ancestors",
				Flags: []cli.Flag{
					committeeFlag,
					configFlag,
					dataDirFlag,
					cacheFlag,
					noProgressFlag,
				},
				Action: checkAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
