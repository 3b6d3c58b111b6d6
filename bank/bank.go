// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package bank - moving value between the wallet and the ledger
//
// every operation validates first and only then mutates, so a
// rejected request leaves both sides untouched.  Operations on the
// same account are serialised; different accounts proceed in
// parallel.
package bank

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/intent"
	"github.com/bitmark-inc/bankd/ledger"
	"github.com/bitmark-inc/bankd/wallet"
)

// Journal - write-ahead record of transfers
type Journal interface {
	Begin(kind intent.Kind, id account.Identifier, amount decimal.Decimal, before decimal.Decimal) (*intent.Intent, error)
	Advance(in *intent.Intent, stage intent.Stage) error
	Complete(in *intent.Intent) error
	Pending() ([]*intent.Intent, error)
}

// Configuration - bank limits
type Configuration struct {
	MaximumBalance float64 `gluamapper:"maximum_balance" json:"maximum_balance"` // zero or less: unlimited
}

// Bank - the transaction API
type Bank struct {
	log     *logger.L
	ledger  *ledger.Ledger
	wallet  wallet.Wallet
	journal Journal
	maximum decimal.Decimal

	lockMu sync.Mutex
	locks  map[account.Identifier]*sync.Mutex

	// intents whose ledger step is applied but not yet on disk
	waitMu  sync.Mutex
	waiting []waitingIntent
}

type waitingIntent struct {
	in      *intent.Intent
	version uint64 // ledger version that must be written first
}

// New - create a bank; a maximum that is not positive means no limit
func New(l *ledger.Ledger, w wallet.Wallet, j Journal, maximum decimal.Decimal) *Bank {
	log := logger.New("bank")
	if maximum.IsPositive() {
		log.Infof("maximum balance: %s", maximum)
	} else {
		log.Info("maximum balance: unlimited")
	}

	b := &Bank{
		log:     log,
		ledger:  l,
		wallet:  w,
		journal: j,
		maximum: maximum,
		locks:   make(map[account.Identifier]*sync.Mutex),
	}
	l.OnDurable(b.durable)
	return b
}

func (b *Bank) accountLock(id account.Identifier) *sync.Mutex {
	b.lockMu.Lock()
	defer b.lockMu.Unlock()

	mu, ok := b.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		b.locks[id] = mu
	}
	return mu
}

// Deposit - move an amount from the wallet into the bank
//
// returns the new bank balance
func (b *Bank) Deposit(ctx context.Context, id account.Identifier, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return b.ledger.Get(id), fault.ErrInvalidAmount
	}

	mu := b.accountLock(id)
	mu.Lock()
	defer mu.Unlock()

	return b.deposit(ctx, id, amount)
}

// DepositAll - move the whole wallet balance into the bank
//
// returns the amount moved and the new bank balance
func (b *Bank) DepositAll(ctx context.Context, id account.Identifier) (decimal.Decimal, decimal.Decimal, error) {
	mu := b.accountLock(id)
	mu.Lock()
	defer mu.Unlock()

	available, err := b.wallet.Balance(ctx, id)
	if nil != err {
		return decimal.Zero, b.ledger.Get(id), err
	}
	if !available.IsPositive() {
		return decimal.Zero, b.ledger.Get(id), fault.ErrInvalidAmount
	}

	balance, err := b.deposit(ctx, id, available)
	return available, balance, err
}

// must hold the account lock
func (b *Bank) deposit(ctx context.Context, id account.Identifier, amount decimal.Decimal) (decimal.Decimal, error) {
	current := b.ledger.Get(id)

	available, err := b.wallet.Balance(ctx, id)
	if nil != err {
		return current, err
	}
	if available.LessThan(amount) {
		return current, fault.ErrInsufficientFunds
	}
	if b.maximum.IsPositive() && current.Add(amount).GreaterThan(b.maximum) {
		return current, fault.ErrBankLimitReached
	}

	in, err := b.journal.Begin(intent.Deposit, id, amount, current)
	if nil != err {
		b.log.Errorf("deposit: %s  journal error: %s", id, err)
		return current, err
	}

	if err := b.wallet.Withdraw(ctx, id, amount); nil != err {
		b.log.Warnf("deposit: %s  amount: %s  wallet error: %s", id, amount, err)
		b.complete(in)
		return current, err
	}

	if err := b.journal.Advance(in, intent.Transferred); nil != err {
		b.log.Errorf("deposit: %s  journal advance error: %s", id, err)
	}

	err = b.ledger.Add(id, amount)
	if nil == err {
		b.complete(in)
	} else {
		b.log.Errorf("deposit: %s  amount: %s  ledger error: %s  intent: %s kept", id, amount, err, in.ID)
		b.completeWhenDurable(in)
	}

	b.log.Infof("deposit: %s  amount: %s", id, amount)
	return b.ledger.Get(id), err
}

// Withdraw - move an amount from the bank into the wallet
//
// returns the new bank balance
func (b *Bank) Withdraw(ctx context.Context, id account.Identifier, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return b.ledger.Get(id), fault.ErrInvalidAmount
	}

	mu := b.accountLock(id)
	mu.Lock()
	defer mu.Unlock()

	return b.withdraw(ctx, id, amount)
}

// WithdrawAll - move the whole bank balance into the wallet
//
// returns the amount moved and the new bank balance
func (b *Bank) WithdrawAll(ctx context.Context, id account.Identifier) (decimal.Decimal, decimal.Decimal, error) {
	mu := b.accountLock(id)
	mu.Lock()
	defer mu.Unlock()

	current := b.ledger.Get(id)
	if !current.IsPositive() {
		return decimal.Zero, current, fault.ErrInvalidAmount
	}

	balance, err := b.withdraw(ctx, id, current)
	return current, balance, err
}

// must hold the account lock
func (b *Bank) withdraw(ctx context.Context, id account.Identifier, amount decimal.Decimal) (decimal.Decimal, error) {
	current := b.ledger.Get(id)
	if current.LessThan(amount) {
		return current, fault.ErrInsufficientBankFunds
	}

	in, err := b.journal.Begin(intent.Withdraw, id, amount, current)
	if nil != err {
		b.log.Errorf("withdraw: %s  journal error: %s", id, err)
		return current, err
	}

	// memory is updated even when the write fails
	ledgerErr := b.ledger.Remove(id, amount)
	if nil != ledgerErr && fault.ErrPersistenceFailure != ledgerErr {
		b.complete(in)
		return current, ledgerErr
	}

	if err := b.journal.Advance(in, intent.Transferred); nil != err {
		b.log.Errorf("withdraw: %s  journal advance error: %s", id, err)
	}

	if err := b.wallet.Deposit(ctx, id, amount); nil != err {
		b.log.Warnf("withdraw: %s  amount: %s  wallet error: %s  restoring bank balance", id, amount, err)
		if restoreErr := b.ledger.Add(id, amount); nil != restoreErr {
			b.log.Errorf("withdraw: %s  restore error: %s", id, restoreErr)
		}
		b.complete(in)
		return b.ledger.Get(id), err
	}

	if nil == ledgerErr {
		b.complete(in)
	} else {
		if err := b.journal.Advance(in, intent.Settled); nil != err {
			b.log.Errorf("withdraw: %s  journal advance error: %s", id, err)
		}
		b.log.Errorf("withdraw: %s  amount: %s  ledger error: %s  intent: %s kept", id, amount, ledgerErr, in.ID)
		b.completeWhenDurable(in)
	}

	b.log.Infof("withdraw: %s  amount: %s", id, amount)
	return b.ledger.Get(id), ledgerErr
}

// AdminSet - overwrite a bank balance without touching the wallet
//
// the identity must be known to the wallet
func (b *Bank) AdminSet(ctx context.Context, id account.Identifier, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fault.ErrInvalidAmount
	}

	exists, err := b.wallet.Exists(ctx, id)
	if nil != err {
		return err
	}
	if !exists {
		return fault.ErrAccountNotFound
	}

	mu := b.accountLock(id)
	mu.Lock()
	defer mu.Unlock()

	b.log.Infof("set: %s  amount: %s", id, amount)
	return b.ledger.Set(id, amount)
}

// AdminReset - set a bank balance to zero
func (b *Bank) AdminReset(ctx context.Context, id account.Identifier) error {
	return b.AdminSet(ctx, id, decimal.Zero)
}

// Credit - add to a bank balance without touching the wallet
func (b *Bank) Credit(id account.Identifier, amount decimal.Decimal) error {
	mu := b.accountLock(id)
	mu.Lock()
	defer mu.Unlock()

	return b.ledger.Add(id, amount)
}

// Debit - remove from a bank balance without touching the wallet
//
// the balance must cover the amount
func (b *Bank) Debit(id account.Identifier, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fault.ErrInvalidAmount
	}

	mu := b.accountLock(id)
	mu.Lock()
	defer mu.Unlock()

	if !b.ledger.Has(id, amount) {
		return fault.ErrInsufficientBankFunds
	}
	return b.ledger.Remove(id, amount)
}

// Assign - replace a bank balance, zero or negative removes the account
func (b *Bank) Assign(id account.Identifier, amount decimal.Decimal) error {
	mu := b.accountLock(id)
	mu.Lock()
	defer mu.Unlock()

	return b.ledger.Set(id, amount)
}

// Accrue - credit interest computed from the current balance
//
// compute returns false to skip the account; returns the credited
// interest, the resulting balance and whether anything was credited
func (b *Bank) Accrue(id account.Identifier, compute func(balance decimal.Decimal) (decimal.Decimal, bool)) (decimal.Decimal, decimal.Decimal, bool, error) {
	mu := b.accountLock(id)
	mu.Lock()
	defer mu.Unlock()

	current := b.ledger.Get(id)
	interest, ok := compute(current)
	if !ok || !interest.IsPositive() {
		return decimal.Zero, current, false, nil
	}

	err := b.ledger.Add(id, interest)
	return interest, b.ledger.Get(id), true, err
}

// Balance - current bank balance
func (b *Bank) Balance(id account.Identifier) decimal.Decimal {
	return b.ledger.Get(id)
}

// Has - true if the bank balance covers the amount
func (b *Bank) Has(id account.Identifier, amount decimal.Decimal) bool {
	return b.ledger.Has(id, amount)
}

// Total - sum of all bank balances
func (b *Bank) Total() decimal.Decimal {
	return b.ledger.Total()
}

// Top - richest accounts
func (b *Bank) Top(n int) []ledger.Entry {
	return b.ledger.Top(n)
}

// Accounts - all accounts holding a balance
func (b *Bank) Accounts() []account.Identifier {
	return b.ledger.Accounts()
}

// Unsettled - number of intents waiting for the ledger to be written
func (b *Bank) Unsettled() int {
	b.waitMu.Lock()
	defer b.waitMu.Unlock()
	return len(b.waiting)
}

// keep the intent until a write includes the current ledger version;
// until then a restart must still be able to replay it
func (b *Bank) completeWhenDurable(in *intent.Intent) {
	version := b.ledger.Version()

	b.waitMu.Lock()
	b.waiting = append(b.waiting, waitingIntent{in: in, version: version})
	b.waitMu.Unlock()

	// a write may have finished before the intent was queued
	b.durable(b.ledger.Saved())
}

// called by the ledger after each successful write
func (b *Bank) durable(saved uint64) {
	b.waitMu.Lock()
	done := []*intent.Intent{}
	remaining := b.waiting[:0]
	for _, w := range b.waiting {
		if w.version <= saved {
			done = append(done, w.in)
		} else {
			remaining = append(remaining, w)
		}
	}
	b.waiting = remaining
	b.waitMu.Unlock()

	for _, in := range done {
		b.log.Infof("intent: %s  account: %s  written at version: %d", in.ID, in.Account, saved)
		b.complete(in)
	}
}

func (b *Bank) complete(in *intent.Intent) {
	if err := b.journal.Complete(in); nil != err {
		b.log.Errorf("intent: %s  complete error: %s", in.ID, err)
	}
}
