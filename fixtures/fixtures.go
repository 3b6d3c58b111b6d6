// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared helpers for package tests
package fixtures

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

// fixed identifiers, in ascending byte order
var (
	Account1 = mustAccount("11111111-1111-4111-8111-111111111111")
	Account2 = mustAccount("22222222-2222-4222-8222-222222222222")
	Account3 = mustAccount("33333333-3333-4333-8333-333333333333")
)

func mustAccount(s string) account.Identifier {
	id, err := account.FromString(s)
	if nil != err {
		panic(err)
	}
	return id
}

// Decimal - parse a decimal literal, panics on error
func Decimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SetupTestLogger - log to a file under the testing directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the testing directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

// Directory - the scratch directory, valid between setup and teardown
func Directory() string {
	return dir
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}
