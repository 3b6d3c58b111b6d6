// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/rpc/amount"
)

func checkAccount(s string) (account.Identifier, error) {
	if "" == s {
		return account.Identifier{}, fmt.Errorf("account is required")
	}
	id, err := account.FromString(s)
	if nil != err {
		return account.Identifier{}, fmt.Errorf("invalid account: %q", s)
	}
	return id, nil
}

// a transfer amount: positive or "all"
func checkAmount(s string) (string, error) {
	if amount.IsAll(s) {
		return amount.All, nil
	}
	n, err := amount.Parse(s)
	if nil != err {
		return "", fmt.Errorf("invalid amount: %q", s)
	}
	return n.String(), nil
}

// an administrative balance: zero or more
func checkBalance(s string) (string, error) {
	n, err := amount.ParseNonNegative(s)
	if nil != err {
		return "", fmt.Errorf("invalid balance: %q", s)
	}
	return n.String(), nil
}
