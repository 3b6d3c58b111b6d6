// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/mode"
	"github.com/bitmark-inc/bankd/rpc/amount"
	"github.com/bitmark-inc/bankd/rpc/ratelimit"
)

const (
	rateLimitLedger = 200
	rateBurstLedger = 100
)

// Store - direct balance access for other programs, no wallet involved
type Store interface {
	Balance(id account.Identifier) decimal.Decimal
	Has(id account.Identifier, amount decimal.Decimal) bool
	Total() decimal.Decimal
	Credit(id account.Identifier, amount decimal.Decimal) error
	Debit(id account.Identifier, amount decimal.Decimal) error
	Assign(id account.Identifier, amount decimal.Decimal) error
}

// Ledger - type for RPC calls
type Ledger struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	Store        Store
}

// New - create the RPC handler
func New(log *logger.L, isNormalMode func(mode.Mode) bool, store Store) *Ledger {
	return &Ledger{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitLedger, rateBurstLedger),
		IsNormalMode: isNormalMode,
		Store:        store,
	}
}

// Arguments - account and optional amount
type Arguments struct {
	Account *account.Identifier `json:"account"`
	Amount  string              `json:"amount"`
}

// BalanceReply - balance after the call
type BalanceReply struct {
	Account account.Identifier `json:"account"`
	Balance string             `json:"balance"`
}

// HasReply - result of a sufficiency check
type HasReply struct {
	Has bool `json:"has"`
}

// Get - current balance
func (l *Ledger) Get(arguments *Arguments, reply *BalanceReply) error {
	if err := l.check(arguments, false); nil != err {
		return err
	}

	l.fill(*arguments.Account, reply)
	return nil
}

func (l *Ledger) fill(id account.Identifier, reply *BalanceReply) {
	reply.Account = id
	reply.Balance = l.Store.Balance(id).String()
}

// Set - replace a balance; zero or negative removes the account
func (l *Ledger) Set(arguments *Arguments, reply *BalanceReply) error {
	if err := l.check(arguments, true); nil != err {
		return err
	}

	value, err := decimal.NewFromString(arguments.Amount)
	if nil != err {
		return fault.ErrInvalidAmount
	}

	l.Log.Infof("Ledger.Set: %s  amount: %s", *arguments.Account, value)

	if err := l.Store.Assign(*arguments.Account, value); nil != err {
		return err
	}
	l.fill(*arguments.Account, reply)
	return nil
}

// Add - credit a positive amount
func (l *Ledger) Add(arguments *Arguments, reply *BalanceReply) error {
	if err := l.check(arguments, true); nil != err {
		return err
	}

	value, err := amount.Parse(arguments.Amount)
	if nil != err {
		return err
	}

	l.Log.Infof("Ledger.Add: %s  amount: %s", *arguments.Account, value)

	if err := l.Store.Credit(*arguments.Account, value); nil != err {
		return err
	}
	l.fill(*arguments.Account, reply)
	return nil
}

// Remove - debit a positive amount the balance covers
func (l *Ledger) Remove(arguments *Arguments, reply *BalanceReply) error {
	if err := l.check(arguments, true); nil != err {
		return err
	}

	value, err := amount.Parse(arguments.Amount)
	if nil != err {
		return err
	}

	l.Log.Infof("Ledger.Remove: %s  amount: %s", *arguments.Account, value)

	if err := l.Store.Debit(*arguments.Account, value); nil != err {
		return err
	}
	l.fill(*arguments.Account, reply)
	return nil
}

// Has - true if the balance covers the amount
func (l *Ledger) Has(arguments *Arguments, reply *HasReply) error {
	if err := l.check(arguments, false); nil != err {
		return err
	}

	value, err := amount.ParseNonNegative(arguments.Amount)
	if nil != err {
		return err
	}

	reply.Has = l.Store.Has(*arguments.Account, value)
	return nil
}

// TotalArguments - empty arguments for RPC
type TotalArguments struct{}

// TotalReply - result from RPC
type TotalReply struct {
	Total string `json:"total"`
}

// Total - sum of all balances
func (l *Ledger) Total(_ *TotalArguments, reply *TotalReply) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}

	reply.Total = l.Store.Total().String()
	return nil
}

func (l *Ledger) check(arguments *Arguments, mutating bool) error {
	if err := ratelimit.Limit(l.Limiter); nil != err {
		return err
	}
	if mutating && !l.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringRecovery
	}
	if nil == arguments || nil == arguments.Account {
		return fault.ErrMissingParameters
	}
	return nil
}
