// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/rpc/bank"
)

// GetBalance - bank balance of one account
func (c *Client) GetBalance(id account.Identifier) (*bank.BalanceReply, error) {
	arguments := bank.BalanceArguments{
		Account: &id,
	}
	reply := &bank.BalanceReply{}
	err := c.call("Bank.Balance", "Balance", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// Deposit - move an amount, or "all", from the wallet into the bank
func (c *Client) Deposit(id account.Identifier, amount string) (*bank.TransferReply, error) {
	return c.transfer("Bank.Deposit", "Deposit", id, amount)
}

// Withdraw - move an amount, or "all", from the bank into the wallet
func (c *Client) Withdraw(id account.Identifier, amount string) (*bank.TransferReply, error) {
	return c.transfer("Bank.Withdraw", "Withdraw", id, amount)
}

func (c *Client) transfer(method string, title string, id account.Identifier, amount string) (*bank.TransferReply, error) {
	arguments := bank.TransferArguments{
		Account: &id,
		Amount:  amount,
	}
	reply := &bank.TransferReply{}
	err := c.call(method, title, arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// Set - administrative overwrite of a bank balance
func (c *Client) Set(id account.Identifier, amount string) (*bank.BalanceReply, error) {
	arguments := bank.SetArguments{
		Account: &id,
		Amount:  amount,
	}
	reply := &bank.BalanceReply{}
	err := c.call("Bank.Set", "Set", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// Reset - administrative zeroing of a bank balance
func (c *Client) Reset(id account.Identifier) (*bank.BalanceReply, error) {
	arguments := bank.BalanceArguments{
		Account: &id,
	}
	reply := &bank.BalanceReply{}
	err := c.call("Bank.Reset", "Reset", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// Top - richest accounts
func (c *Client) Top(count int) (*bank.TopReply, error) {
	arguments := bank.TopArguments{
		Count: count,
	}
	reply := &bank.TopReply{}
	err := c.call("Bank.Top", "Top", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// Total - sum of every bank balance
func (c *Client) Total() (*bank.TotalReply, error) {
	reply := &bank.TotalReply{}
	err := c.call("Bank.Total", "Total", bank.TotalArguments{}, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}
