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
)

type metadata struct {
	connect string
	account string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp(w io.Writer, e io.Writer) *cli.App {

	app := cli.NewApp()
	app.Name = "bank-cli"
	app.Usage = "bank balances held by a bankd"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2230",
			Usage:  " bankd host/IP and port, `HOST:PORT`",
			EnvVar: "BANK_CLI_CONNECT",
		},
		cli.StringFlag{
			Name:   "account, a",
			Value:  "",
			Usage:  " own account `UUID`",
			EnvVar: "BANK_CLI_ACCOUNT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "balance",
			Usage:     "display a bank balance",
			ArgsUsage: "[UUID]\n   (default: own account)",
			Action:    runBalance,
		},
		{
			Name:      "deposit",
			Usage:     "move an amount from the wallet into the bank",
			ArgsUsage: "AMOUNT|all",
			Action:    runDeposit,
		},
		{
			Name:      "withdraw",
			Usage:     "move an amount from the bank into the wallet",
			ArgsUsage: "AMOUNT|all",
			Action:    runWithdraw,
		},
		{
			Name:      "set",
			Usage:     "administratively set a bank balance",
			ArgsUsage: "UUID AMOUNT",
			Action:    runSet,
		},
		{
			Name:      "reset",
			Usage:     "administratively zero a bank balance",
			ArgsUsage: "UUID",
			Action:    runReset,
		},
		{
			Name:      "top",
			Usage:     "list the largest bank balances",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "count, n",
					Value: 10,
					Usage: " number of accounts to list `COUNT`",
				},
			},
			Action: runTop,
		},
		{
			Name:   "total",
			Usage:  "display the sum of all bank balances",
			Action: runTotal,
		},
		{
			Name:  "session",
			Usage: "open, close or poll a session for the own account",
			Subcommands: []cli.Command{
				{
					Name:  "join",
					Usage: "open a session",
					Flags: []cli.Flag{
						cli.BoolFlag{
							Name:  "exempt, x",
							Usage: " exclude from interest while active",
						},
					},
					Action: runJoin,
				},
				{
					Name:   "leave",
					Usage:  "close the session",
					Action: runLeave,
				},
				{
					Name:   "poll",
					Usage:  "collect waiting notifications",
					Action: runPoll,
				},
			},
		},
		{
			Name:  "interest",
			Usage: "interest scheduler",
			Subcommands: []cli.Command{
				{
					Name:   "run",
					Usage:  "start an accrual run now",
					Action: runInterestRun,
				},
				{
					Name:   "status",
					Usage:  "display the scheduler state",
					Action: runInterestStatus,
				},
			},
		},
		{
			Name:   "backup",
			Usage:  "write a timestamped copy of the ledger",
			Action: runBackup,
		},
		{
			Name:   "info",
			Usage:  "display bankd status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display bank-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			account: c.GlobalString("account"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}
