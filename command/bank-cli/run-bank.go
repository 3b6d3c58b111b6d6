// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/bankd/command/bank-cli/rpccalls"
)

func runBalance(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	owner := m.account
	if c.NArg() > 0 {
		owner = c.Args().Get(0)
	}
	id, err := checkAccount(owner)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.GetBalance(id)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runDeposit(c *cli.Context) error {
	return transfer(c, "deposit")
}

func runWithdraw(c *cli.Context) error {
	return transfer(c, "withdraw")
}

func transfer(c *cli.Context, direction string) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkAccount(m.account)
	if nil != err {
		return err
	}
	amount, err := checkAmount(c.Args().Get(0))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "%s: %s  account: %s\n", direction, amount, id)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	call := client.Deposit
	if "withdraw" == direction {
		call = client.Withdraw
	}
	response, err := call(id, amount)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runSet(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkAccount(c.Args().Get(0))
	if nil != err {
		return err
	}
	amount, err := checkBalance(c.Args().Get(1))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Set(id, amount)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runReset(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	id, err := checkAccount(c.Args().Get(0))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Reset(id)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runTop(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Top(count)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

func runTotal(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	response, err := client.Total()
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}
