// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bank

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/ledger"
	"github.com/bitmark-inc/bankd/mode"
	"github.com/bitmark-inc/bankd/rpc/amount"
	"github.com/bitmark-inc/bankd/rpc/ratelimit"
)

//go:generate mockgen -source=bank.go -destination=../mocks/transactor.go -package=mocks

const (
	rateLimitBank = 200
	rateBurstBank = 100

	maximumTopCount = 100
)

// Transactor - bank operations offered over RPC
type Transactor interface {
	Balance(id account.Identifier) decimal.Decimal
	Deposit(ctx context.Context, id account.Identifier, amount decimal.Decimal) (decimal.Decimal, error)
	DepositAll(ctx context.Context, id account.Identifier) (decimal.Decimal, decimal.Decimal, error)
	Withdraw(ctx context.Context, id account.Identifier, amount decimal.Decimal) (decimal.Decimal, error)
	WithdrawAll(ctx context.Context, id account.Identifier) (decimal.Decimal, decimal.Decimal, error)
	AdminSet(ctx context.Context, id account.Identifier, amount decimal.Decimal) error
	AdminReset(ctx context.Context, id account.Identifier) error
	Top(n int) []ledger.Entry
	Total() decimal.Decimal
}

// Bank - type for RPC calls
type Bank struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	Transactor   Transactor
}

// New - create the RPC handler
func New(log *logger.L, isNormalMode func(mode.Mode) bool, transactor Transactor) *Bank {
	return &Bank{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitBank, rateBurstBank),
		IsNormalMode: isNormalMode,
		Transactor:   transactor,
	}
}

// Bank balance
// ------------

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Account *account.Identifier `json:"account"`
}

// BalanceReply - result from RPC
type BalanceReply struct {
	Account account.Identifier `json:"account"`
	Balance string             `json:"balance"`
}

// Balance - current bank balance of an account
func (bank *Bank) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(bank.Limiter); nil != err {
		return err
	}

	if nil == arguments || nil == arguments.Account {
		return fault.ErrMissingParameters
	}

	reply.Account = *arguments.Account
	reply.Balance = bank.Transactor.Balance(*arguments.Account).String()
	return nil
}

// Transfers
// ---------

// TransferArguments - arguments for RPC; amount is a decimal or "all"
type TransferArguments struct {
	Account *account.Identifier `json:"account"`
	Amount  string              `json:"amount"`
}

// TransferReply - result from RPC
type TransferReply struct {
	Account account.Identifier `json:"account"`
	Amount  string             `json:"amount"`
	Balance string             `json:"balance"`
}

// Deposit - move from the wallet into the bank
func (bank *Bank) Deposit(arguments *TransferArguments, reply *TransferReply) error {
	if err := bank.checkTransfer(arguments); nil != err {
		return err
	}

	bank.Log.Infof("Bank.Deposit: %s  amount: %q", *arguments.Account, arguments.Amount)

	ctx := context.Background()
	id := *arguments.Account

	var moved, balance decimal.Decimal
	var err error
	if amount.IsAll(arguments.Amount) {
		moved, balance, err = bank.Transactor.DepositAll(ctx, id)
	} else {
		moved, err = amount.Parse(arguments.Amount)
		if nil != err {
			return err
		}
		balance, err = bank.Transactor.Deposit(ctx, id, moved)
	}
	if nil != err {
		return err
	}

	reply.Account = id
	reply.Amount = moved.String()
	reply.Balance = balance.String()
	return nil
}

// Withdraw - move from the bank into the wallet
func (bank *Bank) Withdraw(arguments *TransferArguments, reply *TransferReply) error {
	if err := bank.checkTransfer(arguments); nil != err {
		return err
	}

	bank.Log.Infof("Bank.Withdraw: %s  amount: %q", *arguments.Account, arguments.Amount)

	ctx := context.Background()
	id := *arguments.Account

	var moved, balance decimal.Decimal
	var err error
	if amount.IsAll(arguments.Amount) {
		moved, balance, err = bank.Transactor.WithdrawAll(ctx, id)
	} else {
		moved, err = amount.Parse(arguments.Amount)
		if nil != err {
			return err
		}
		balance, err = bank.Transactor.Withdraw(ctx, id, moved)
	}
	if nil != err {
		return err
	}

	reply.Account = id
	reply.Amount = moved.String()
	reply.Balance = balance.String()
	return nil
}

func (bank *Bank) checkTransfer(arguments *TransferArguments) error {
	if err := ratelimit.Limit(bank.Limiter); nil != err {
		return err
	}
	if !bank.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringRecovery
	}
	if nil == arguments || nil == arguments.Account {
		return fault.ErrMissingParameters
	}
	return nil
}

// Administrative corrections
// --------------------------

// SetArguments - arguments for RPC
type SetArguments struct {
	Account *account.Identifier `json:"account"`
	Amount  string              `json:"amount"`
}

// Set - overwrite a bank balance
func (bank *Bank) Set(arguments *SetArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(bank.Limiter); nil != err {
		return err
	}
	if !bank.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringRecovery
	}
	if nil == arguments || nil == arguments.Account {
		return fault.ErrMissingParameters
	}

	value, err := amount.ParseNonNegative(arguments.Amount)
	if nil != err {
		return err
	}

	bank.Log.Infof("Bank.Set: %s  amount: %s", *arguments.Account, value)

	err = bank.Transactor.AdminSet(context.Background(), *arguments.Account, value)
	if nil != err {
		return err
	}

	reply.Account = *arguments.Account
	reply.Balance = bank.Transactor.Balance(*arguments.Account).String()
	return nil
}

// Reset - set a bank balance to zero
func (bank *Bank) Reset(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(bank.Limiter); nil != err {
		return err
	}
	if !bank.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringRecovery
	}
	if nil == arguments || nil == arguments.Account {
		return fault.ErrMissingParameters
	}

	bank.Log.Infof("Bank.Reset: %s", *arguments.Account)

	err := bank.Transactor.AdminReset(context.Background(), *arguments.Account)
	if nil != err {
		return err
	}

	reply.Account = *arguments.Account
	reply.Balance = decimal.Zero.String()
	return nil
}

// Ranking
// -------

// TopArguments - arguments for RPC
type TopArguments struct {
	Count int `json:"count"`
}

// TopEntry - one ranked account
type TopEntry struct {
	Rank    int                `json:"rank"`
	Account account.Identifier `json:"account"`
	Balance string             `json:"balance"`
}

// TopReply - result from RPC
type TopReply struct {
	Entries []TopEntry `json:"entries"`
}

// Top - the richest accounts
func (bank *Bank) Top(arguments *TopArguments, reply *TopReply) error {
	if nil == arguments {
		return fault.ErrMissingParameters
	}
	if err := ratelimit.LimitN(bank.Limiter, arguments.Count, maximumTopCount); nil != err {
		return err
	}

	top := bank.Transactor.Top(arguments.Count)
	reply.Entries = make([]TopEntry, len(top))
	for i, e := range top {
		reply.Entries[i] = TopEntry{
			Rank:    i + 1,
			Account: e.Account,
			Balance: e.Balance.String(),
		}
	}
	return nil
}

// TotalArguments - empty arguments for RPC
type TotalArguments struct{}

// TotalReply - result from RPC
type TotalReply struct {
	Total string `json:"total"`
}

// Total - sum of all bank balances
func (bank *Bank) Total(_ *TotalArguments, reply *TotalReply) error {
	if err := ratelimit.Limit(bank.Limiter); nil != err {
		return err
	}

	reply.Total = bank.Transactor.Total().String()
	return nil
}
