// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/storage"
)

// Local - wallet balances kept in a storage pool
//
// an identity is known once registered, even with a zero balance
type Local struct {
	sync.Mutex
	log  *logger.L
	pool storage.Handle
}

// NewLocal - create a wallet on a storage pool
func NewLocal(pool storage.Handle) *Local {
	return &Local{
		log:  logger.New("wallet"),
		pool: pool,
	}
}

// Register - make an identity known with an opening balance
//
// returns false if the identity was already known, its balance is untouched
func (w *Local) Register(ctx context.Context, id account.Identifier, opening decimal.Decimal) (bool, error) {
	if err := ctx.Err(); nil != err {
		return false, err
	}
	if opening.IsNegative() {
		return false, fault.ErrInvalidAmount
	}

	w.Lock()
	defer w.Unlock()

	found, err := w.pool.Has(id.Bytes())
	if nil != err {
		return false, err
	}
	if found {
		return false, nil
	}

	w.log.Infof("register: %s  opening: %s", id, opening)
	return true, w.put(id, opening)
}

// Exists - true if the identity was ever registered or credited
func (w *Local) Exists(ctx context.Context, id account.Identifier) (bool, error) {
	if err := ctx.Err(); nil != err {
		return false, err
	}
	return w.pool.Has(id.Bytes())
}

// Balance - current wallet balance, zero if unknown
func (w *Local) Balance(ctx context.Context, id account.Identifier) (decimal.Decimal, error) {
	if err := ctx.Err(); nil != err {
		return decimal.Zero, err
	}

	w.Lock()
	defer w.Unlock()
	return w.get(id)
}

// Withdraw - debit the wallet
func (w *Local) Withdraw(ctx context.Context, id account.Identifier, amount decimal.Decimal) error {
	if err := ctx.Err(); nil != err {
		return err
	}
	if !amount.IsPositive() {
		return fault.ErrInvalidAmount
	}

	w.Lock()
	defer w.Unlock()

	balance, err := w.get(id)
	if nil != err {
		return err
	}
	if balance.LessThan(amount) {
		return fault.ErrInsufficientFunds
	}
	return w.put(id, balance.Sub(amount))
}

// Deposit - credit the wallet, registering the identity if necessary
func (w *Local) Deposit(ctx context.Context, id account.Identifier, amount decimal.Decimal) error {
	if err := ctx.Err(); nil != err {
		return err
	}
	if !amount.IsPositive() {
		return fault.ErrInvalidAmount
	}

	w.Lock()
	defer w.Unlock()

	balance, err := w.get(id)
	if nil != err {
		return err
	}
	return w.put(id, balance.Add(amount))
}

// must hold lock
func (w *Local) get(id account.Identifier) (decimal.Decimal, error) {
	value, err := w.pool.Get(id.Bytes())
	if nil != err {
		return decimal.Zero, err
	}
	if nil == value {
		return decimal.Zero, nil
	}
	balance, err := decimal.NewFromString(string(value))
	if nil != err {
		w.log.Errorf("corrupt balance for: %s  value: %q", id, value)
		return decimal.Zero, fault.ErrWalletFailure
	}
	return balance, nil
}

// must hold lock
func (w *Local) put(id account.Identifier, balance decimal.Decimal) error {
	return w.pool.Put(id.Bytes(), []byte(balance.String()))
}
