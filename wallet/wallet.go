// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet - the primary spendable currency
//
// the bank moves value between this wallet and the ledger; the wallet
// is normally an external service, Local is a self contained
// implementation kept in the storage database
package wallet

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/bankd/account"
)

//go:generate mockgen -source=wallet.go -destination=mocks/wallet.go -package=mocks

// Wallet - operations the bank needs from the primary currency
//
// Withdraw must fail with fault.ErrInsufficientFunds rather than go
// negative; Exists reports whether the identity is known at all
type Wallet interface {
	Balance(ctx context.Context, id account.Identifier) (decimal.Decimal, error)
	Withdraw(ctx context.Context, id account.Identifier, amount decimal.Decimal) error
	Deposit(ctx context.Context, id account.Identifier, amount decimal.Decimal) error
	Exists(ctx context.Context, id account.Identifier) (bool, error)
}
