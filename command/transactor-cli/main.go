// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/mutualcredit/transactord/command/transactor-cli/rpccalls"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "transactor-cli"
	app.Usage = "client for a transactord node"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2230",
			Usage:  " transactord RPC `HOST:PORT`",
			EnvVar: "TRANSACTOR_CONNECT",
		},
	}

	initFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "counterparty, p",
			Value: "",
			Usage: "*counterparty `ACCOUNT`",
		},
		cli.StringFlag{
			Name:  "amount, a",
			Value: "",
			Usage: "*amount as lowercase hex `HEX`",
		},
		cli.StringFlag{
			Name:  "notes, n",
			Value: "",
			Usage: " free text `STRING`",
		},
	}
	resolveFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "init, i",
			Value: "",
			Usage: "*link of the init record `LINK`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "display node identity and ledger limits",
			Action: runInfo,
		},
		{
			Name:   "balance",
			Usage:  "display balance and accrued fee",
			Action: runBalance,
		},
		{
			Name:   "pending",
			Usage:  "list open proposals",
			Action: runPending,
		},
		{
			Name:      "transactions",
			Usage:     "list completed transfers",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.Uint64Flag{
					Name:  "start, s",
					Value: 0,
					Usage: " first transfer `NUMBER`",
				},
				cli.IntFlag{
					Name:  "count, n",
					Value: 20,
					Usage: " number of transfers `COUNT`",
				},
			},
			Action: runTransactions,
		},
		{
			Name:      "get",
			Usage:     "display one record",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "link, l",
					Value: "",
					Usage: "*record `LINK`",
				},
			},
			Action: runGet,
		},
		{
			Name:      "alpha-init",
			Usage:     "ask the counterparty to pay",
			ArgsUsage: "\n   (* = required)",
			Flags:     initFlags,
			Action:    runInit(rpccalls.Alpha),
		},
		{
			Name:      "alpha-accept",
			Usage:     "pay an alpha proposal",
			ArgsUsage: "\n   (* = required)",
			Flags:     resolveFlags,
			Action:    runResolve(rpccalls.Alpha, "Accept"),
		},
		{
			Name:      "alpha-reject",
			Usage:     "refuse an alpha proposal",
			ArgsUsage: "\n   (* = required)",
			Flags:     resolveFlags,
			Action:    runResolve(rpccalls.Alpha, "Reject"),
		},
		{
			Name:      "beta-init",
			Usage:     "offer to pay the counterparty",
			ArgsUsage: "\n   (* = required)",
			Flags:     initFlags,
			Action:    runInit(rpccalls.Beta),
		},
		{
			Name:      "beta-accept",
			Usage:     "receive a beta offer",
			ArgsUsage: "\n   (* = required)",
			Flags:     resolveFlags,
			Action:    runResolve(rpccalls.Beta, "Accept"),
		},
		{
			Name:      "beta-reject",
			Usage:     "refuse a beta offer",
			ArgsUsage: "\n   (* = required)",
			Flags:     resolveFlags,
			Action:    runResolve(rpccalls.Beta, "Reject"),
		},
		{
			Name:      "beta-withdraw",
			Usage:     "cancel an own beta offer",
			ArgsUsage: "\n   (* = required)",
			Flags:     resolveFlags,
			Action:    runResolve(rpccalls.Beta, "Withdraw"),
		},
		{
			Name:  "version",
			Usage: "display transactor-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}
