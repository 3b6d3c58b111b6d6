// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/fixtures"
	"github.com/bitmark-inc/bankd/ledger"
	"github.com/bitmark-inc/bankd/mode"
	"github.com/bitmark-inc/bankd/presence"
	"github.com/bitmark-inc/bankd/rpc/session"
)

type fakeRegistrar struct {
	sync.Mutex
	known map[account.Identifier]decimal.Decimal
}

func (r *fakeRegistrar) Register(_ context.Context, id account.Identifier, opening decimal.Decimal) (bool, error) {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.known[id]; ok {
		return false, nil
	}
	r.known[id] = opening
	return true, nil
}

type switchPersister struct {
	fail bool
}

func (p *switchPersister) Save(map[account.Identifier]decimal.Decimal) error {
	if p.fail {
		return fmt.Errorf("read only file system")
	}
	return nil
}

type balances struct {
	l *ledger.Ledger
}

func (b balances) Balance(id account.Identifier) decimal.Decimal {
	return b.l.Get(id)
}

func TestMain(m *testing.M) {
	fixtures.SetupTestLogger()
	rc := m.Run()
	fixtures.TeardownTestLogger()
	os.Exit(rc)
}

type setup struct {
	registrar *fakeRegistrar
	registry  *presence.Registry
	persister *switchPersister
	ledger    *ledger.Ledger
	handler   *session.Session
}

func newSetup(notify bool) *setup {
	s := &setup{
		registrar: &fakeRegistrar{known: make(map[account.Identifier]decimal.Decimal)},
		registry:  presence.NewRegistry(time.Minute),
		persister: &switchPersister{},
	}
	s.ledger = ledger.New(s.persister, map[account.Identifier]decimal.Decimal{
		fixtures.Account1: fixtures.Decimal("5050"),
	})
	s.handler = session.New(
		logger.New(fixtures.LogCategory),
		func(mode.Mode) bool { return true },
		s.registrar,
		s.registry,
		s.registry,
		balances{l: s.ledger},
		s.ledger,
		session.Options{
			OpeningBalance: fixtures.Decimal("100"),
			NotifyOnJoin:   notify,
		},
	)
	return s
}

func TestSessionJoin(t *testing.T) {
	s := newSetup(true)
	id := fixtures.Account1

	var reply session.JoinReply
	err := s.handler.Join(&session.JoinArguments{Account: &id}, &reply)
	assert.Nil(t, err, "wrong Join")
	assert.True(t, reply.Registered, "not registered")
	assert.Equal(t, "5050", reply.Balance, "wrong balance")
	assert.Equal(t, "100", s.registrar.known[id].String(), "wrong opening balance")
	assert.True(t, s.registry.IsActive(id), "session not open")

	var poll session.PollReply
	err = s.handler.Poll(&session.AccountArguments{Account: &id}, &poll)
	assert.Nil(t, err, "wrong Poll")
	assert.Equal(t, 1, len(poll.Messages), "wrong message count")
	assert.Equal(t, "Your bank balance is 5050.00.", poll.Messages[0].Text, "wrong message")

	err = s.handler.Join(&session.JoinArguments{Account: &id, Exempt: true}, &reply)
	assert.Nil(t, err, "wrong second Join")
	assert.False(t, reply.Registered, "registered twice")
	assert.True(t, s.registry.IsExempt(id), "exemption lost")
}

func TestSessionJoinQuiet(t *testing.T) {
	s := newSetup(false)
	id := fixtures.Account1

	var reply session.JoinReply
	err := s.handler.Join(&session.JoinArguments{Account: &id}, &reply)
	assert.Nil(t, err, "wrong Join")

	var poll session.PollReply
	err = s.handler.Poll(&session.AccountArguments{Account: &id}, &poll)
	assert.Nil(t, err, "wrong Poll")
	assert.Equal(t, 0, len(poll.Messages), "balance sent while disabled")

	// nothing to report for an empty account
	s = newSetup(true)
	empty := fixtures.Account2
	err = s.handler.Join(&session.JoinArguments{Account: &empty}, &reply)
	assert.Nil(t, err, "wrong Join")
	err = s.handler.Poll(&session.AccountArguments{Account: &empty}, &poll)
	assert.Nil(t, err, "wrong Poll")
	assert.Equal(t, 0, len(poll.Messages), "zero balance sent")
}

func TestSessionLeave(t *testing.T) {
	s := newSetup(false)
	id := fixtures.Account2

	var leave session.LeaveReply
	err := s.handler.Leave(&session.AccountArguments{Account: &id}, &leave)
	assert.Equal(t, fault.ErrSessionNotFound, err, "leave without join")

	var join session.JoinReply
	assert.Nil(t, s.handler.Join(&session.JoinArguments{Account: &id}, &join), "wrong Join")

	var refresh session.RefreshReply
	err = s.handler.Refresh(&session.AccountArguments{Account: &id}, &refresh)
	assert.Nil(t, err, "wrong Refresh")
	assert.True(t, refresh.Active, "not active")

	s.persister.fail = true
	err = s.handler.Leave(&session.AccountArguments{Account: &id}, &leave)
	assert.Nil(t, err, "wrong Leave")
	assert.False(t, leave.Durable, "durable with failing disk")
	assert.False(t, s.registry.IsActive(id), "still active")

	err = s.handler.Refresh(&session.AccountArguments{Account: &id}, &refresh)
	assert.Equal(t, fault.ErrSessionNotFound, err, "refresh after leave")

	var poll session.PollReply
	err = s.handler.Poll(&session.AccountArguments{Account: &id}, &poll)
	assert.Equal(t, fault.ErrSessionNotFound, err, "poll after leave")
}

func TestSessionJoinRecovering(t *testing.T) {
	s := newSetup(false)
	s.handler.IsNormalMode = func(mode.Mode) bool { return false }
	id := fixtures.Account3

	var reply session.JoinReply
	err := s.handler.Join(&session.JoinArguments{Account: &id}, &reply)
	assert.Equal(t, fault.ErrNotAvailableDuringRecovery, err, "join during recovery")
	assert.Equal(t, 0, len(s.registrar.known), "registered during recovery")
}
