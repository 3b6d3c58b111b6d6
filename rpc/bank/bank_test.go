// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bank_test

import (
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/fixtures"
	"github.com/bitmark-inc/bankd/ledger"
	"github.com/bitmark-inc/bankd/mode"
	"github.com/bitmark-inc/bankd/rpc/bank"
	"github.com/bitmark-inc/bankd/rpc/mocks"
)

type decimalMatcher struct {
	value decimal.Decimal
}

func decimalEq(s string) gomock.Matcher {
	return decimalMatcher{value: fixtures.Decimal(s)}
}

func (m decimalMatcher) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.value)
}

func (m decimalMatcher) String() string {
	return "is equal to " + m.value.String()
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

func normal(_ mode.Mode) bool     { return true }
func recovering(_ mode.Mode) bool { return false }

func TestBankBalance(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tr := mocks.NewMockTransactor(ctl)
	b := bank.New(logger.New(fixtures.LogCategory), normal, tr)

	id := fixtures.Account1
	tr.EXPECT().Balance(id).Return(fixtures.Decimal("12.5")).Times(1)

	var reply bank.BalanceReply
	err := b.Balance(&bank.BalanceArguments{Account: &id}, &reply)
	assert.Nil(t, err, "wrong Balance")
	assert.Equal(t, id, reply.Account, "wrong account")
	assert.Equal(t, "12.5", reply.Balance, "wrong balance")

	err = b.Balance(&bank.BalanceArguments{}, &reply)
	assert.Equal(t, fault.ErrMissingParameters, err, "missing account accepted")
}

func TestBankDeposit(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tr := mocks.NewMockTransactor(ctl)
	b := bank.New(logger.New(fixtures.LogCategory), normal, tr)

	id := fixtures.Account1
	tr.EXPECT().Deposit(gomock.Any(), id, decimalEq("100")).Return(fixtures.Decimal("150"), nil).Times(1)

	var reply bank.TransferReply
	err := b.Deposit(&bank.TransferArguments{Account: &id, Amount: "100"}, &reply)
	assert.Nil(t, err, "wrong Deposit")
	assert.Equal(t, "100", reply.Amount, "wrong amount")
	assert.Equal(t, "150", reply.Balance, "wrong balance")

	err = b.Deposit(&bank.TransferArguments{Account: &id, Amount: "-3"}, &reply)
	assert.Equal(t, fault.ErrInvalidAmount, err, "negative amount accepted")

	err = b.Deposit(&bank.TransferArguments{Account: &id, Amount: "lots"}, &reply)
	assert.Equal(t, fault.ErrInvalidAmount, err, "text amount accepted")
}

func TestBankDepositAll(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tr := mocks.NewMockTransactor(ctl)
	b := bank.New(logger.New(fixtures.LogCategory), normal, tr)

	id := fixtures.Account2
	tr.EXPECT().DepositAll(gomock.Any(), id).Return(fixtures.Decimal("250.75"), fixtures.Decimal("250.75"), nil).Times(1)

	var reply bank.TransferReply
	err := b.Deposit(&bank.TransferArguments{Account: &id, Amount: "all"}, &reply)
	assert.Nil(t, err, "wrong Deposit")
	assert.Equal(t, "250.75", reply.Amount, "wrong amount")
	assert.Equal(t, "250.75", reply.Balance, "wrong balance")
}

func TestBankWithdraw(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tr := mocks.NewMockTransactor(ctl)
	b := bank.New(logger.New(fixtures.LogCategory), normal, tr)

	id := fixtures.Account1
	tr.EXPECT().Withdraw(gomock.Any(), id, decimalEq("0.5")).Return(fixtures.Decimal("0"), fault.ErrInsufficientBankFunds).Times(1)
	tr.EXPECT().WithdrawAll(gomock.Any(), id).Return(fixtures.Decimal("7"), decimal.Zero, nil).Times(1)

	var reply bank.TransferReply
	err := b.Withdraw(&bank.TransferArguments{Account: &id, Amount: "0.5"}, &reply)
	assert.Equal(t, fault.ErrInsufficientBankFunds, err, "wrong error")

	err = b.Withdraw(&bank.TransferArguments{Account: &id, Amount: "ALL"}, &reply)
	assert.Nil(t, err, "wrong WithdrawAll")
	assert.Equal(t, "7", reply.Amount, "wrong amount")
	assert.Equal(t, "0", reply.Balance, "wrong balance")
}

func TestBankRecovering(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tr := mocks.NewMockTransactor(ctl)
	b := bank.New(logger.New(fixtures.LogCategory), recovering, tr)

	id := fixtures.Account1
	var reply bank.TransferReply
	err := b.Deposit(&bank.TransferArguments{Account: &id, Amount: "1"}, &reply)
	assert.Equal(t, fault.ErrNotAvailableDuringRecovery, err, "deposit during recovery")

	var setReply bank.BalanceReply
	err = b.Set(&bank.SetArguments{Account: &id, Amount: "1"}, &setReply)
	assert.Equal(t, fault.ErrNotAvailableDuringRecovery, err, "set during recovery")
}

func TestBankSetReset(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tr := mocks.NewMockTransactor(ctl)
	b := bank.New(logger.New(fixtures.LogCategory), normal, tr)

	id := fixtures.Account3
	tr.EXPECT().AdminSet(gomock.Any(), id, decimalEq("42")).Return(nil).Times(1)
	tr.EXPECT().Balance(id).Return(fixtures.Decimal("42")).Times(1)
	tr.EXPECT().AdminReset(gomock.Any(), id).Return(fault.ErrAccountNotFound).Times(1)

	var reply bank.BalanceReply
	err := b.Set(&bank.SetArguments{Account: &id, Amount: "42"}, &reply)
	assert.Nil(t, err, "wrong Set")
	assert.Equal(t, "42", reply.Balance, "wrong balance")

	err = b.Set(&bank.SetArguments{Account: &id, Amount: "-1"}, &reply)
	assert.Equal(t, fault.ErrInvalidAmount, err, "negative set accepted")

	err = b.Reset(&bank.BalanceArguments{Account: &id}, &reply)
	assert.Equal(t, fault.ErrAccountNotFound, err, "wrong Reset error")
}

func TestBankTopTotal(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tr := mocks.NewMockTransactor(ctl)
	b := bank.New(logger.New(fixtures.LogCategory), normal, tr)

	tr.EXPECT().Top(2).Return([]ledger.Entry{
		{Account: fixtures.Account2, Balance: fixtures.Decimal("30")},
		{Account: fixtures.Account1, Balance: fixtures.Decimal("20")},
	}).Times(1)
	tr.EXPECT().Total().Return(fixtures.Decimal("60")).Times(1)

	var reply bank.TopReply
	err := b.Top(&bank.TopArguments{Count: 2}, &reply)
	assert.Nil(t, err, "wrong Top")
	assert.Equal(t, 2, len(reply.Entries), "wrong count")
	assert.Equal(t, 1, reply.Entries[0].Rank, "wrong rank")
	assert.Equal(t, fixtures.Account2, reply.Entries[0].Account, "wrong first account")
	assert.Equal(t, "20", reply.Entries[1].Balance, "wrong second balance")

	err = b.Top(&bank.TopArguments{Count: 0}, &reply)
	assert.Equal(t, fault.ErrInvalidCount, err, "zero count accepted")

	var total bank.TotalReply
	err = b.Total(&bank.TotalArguments{}, &total)
	assert.Nil(t, err, "wrong Total")
	assert.Equal(t, "60", total.Total, "wrong total")
}
