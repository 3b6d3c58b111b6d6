// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package presence - sessions of account holders
//
// the interest scheduler only needs to know whether an account
// holder is currently active, whether they are exempt from interest
// and how to tell them about it
package presence

import (
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/bankd/account"
)

//go:generate mockgen -source=presence.go -destination=mocks/presence.go -package=mocks

// Presence - session state of account holders
type Presence interface {
	IsActive(id account.Identifier) bool
	IsExempt(id account.Identifier) bool
	KnownExempt(id account.Identifier) bool
}

// Notifier - deliver messages to account holders
type Notifier interface {
	InterestEarned(id account.Identifier, interest decimal.Decimal, balance decimal.Decimal)
	Balance(id account.Identifier, balance decimal.Decimal)
}
