// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package session

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/mode"
	"github.com/bitmark-inc/bankd/presence"
	"github.com/bitmark-inc/bankd/rpc/ratelimit"
)

const (
	rateLimitSession = 500
	rateBurstSession = 200
)

// Registrar - makes an identity known to the wallet
type Registrar interface {
	Register(ctx context.Context, id account.Identifier, opening decimal.Decimal) (bool, error)
}

// Sessions - the session registry
type Sessions interface {
	Join(id account.Identifier, exempt bool)
	Refresh(id account.Identifier) bool
	Leave(id account.Identifier) bool
	Drain(id account.Identifier) ([]presence.Message, bool)
}

// Balances - bank balance lookup
type Balances interface {
	Balance(id account.Identifier) decimal.Decimal
}

// Flusher - forces the ledger to disk
type Flusher interface {
	Flush() error
}

// Options - join behaviour
type Options struct {
	OpeningBalance decimal.Decimal // wallet balance of a newly registered identity
	NotifyOnJoin   bool            // send the bank balance when a session opens
}

// Session - type for RPC calls
type Session struct {
	Log          *logger.L
	Limiter      *rate.Limiter
	IsNormalMode func(mode.Mode) bool
	Registrar    Registrar
	Sessions     Sessions
	Notifier     presence.Notifier
	Balances     Balances
	Flusher      Flusher
	Options      Options
}

// New - create the RPC handler
func New(
	log *logger.L,
	isNormalMode func(mode.Mode) bool,
	registrar Registrar,
	sessions Sessions,
	notifier presence.Notifier,
	balances Balances,
	flusher Flusher,
	options Options,
) *Session {
	return &Session{
		Log:          log,
		Limiter:      rate.NewLimiter(rateLimitSession, rateBurstSession),
		IsNormalMode: isNormalMode,
		Registrar:    registrar,
		Sessions:     sessions,
		Notifier:     notifier,
		Balances:     balances,
		Flusher:      flusher,
		Options:      options,
	}
}

// AccountArguments - arguments for RPC
type AccountArguments struct {
	Account *account.Identifier `json:"account"`
}

// Join
// ----

// JoinArguments - arguments for RPC
type JoinArguments struct {
	Account *account.Identifier `json:"account"`
	Exempt  bool                `json:"exempt"` // excluded from interest while active
}

// JoinReply - result from RPC
type JoinReply struct {
	Account    account.Identifier `json:"account"`
	Registered bool               `json:"registered"` // first time this identity was seen
	Balance    string             `json:"balance"`
}

// Join - open a session, registering the identity with the wallet if new
func (session *Session) Join(arguments *JoinArguments, reply *JoinReply) error {
	if err := ratelimit.Limit(session.Limiter); nil != err {
		return err
	}
	if !session.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringRecovery
	}
	if nil == arguments || nil == arguments.Account {
		return fault.ErrMissingParameters
	}

	id := *arguments.Account
	registered, err := session.Registrar.Register(context.Background(), id, session.Options.OpeningBalance)
	if nil != err {
		return err
	}

	session.Sessions.Join(id, arguments.Exempt)
	session.Log.Infof("Session.Join: %s  exempt: %t  registered: %t", id, arguments.Exempt, registered)

	balance := session.Balances.Balance(id)
	if session.Options.NotifyOnJoin && balance.IsPositive() {
		session.Notifier.Balance(id, balance)
	}

	reply.Account = id
	reply.Registered = registered
	reply.Balance = balance.String()
	return nil
}

// Refresh
// -------

// RefreshReply - result from RPC
type RefreshReply struct {
	Active bool `json:"active"`
}

// Refresh - heartbeat that keeps a session alive
func (session *Session) Refresh(arguments *AccountArguments, reply *RefreshReply) error {
	if err := ratelimit.Limit(session.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Account {
		return fault.ErrMissingParameters
	}

	if !session.Sessions.Refresh(*arguments.Account) {
		return fault.ErrSessionNotFound
	}
	reply.Active = true
	return nil
}

// Leave
// -----

// LeaveReply - result from RPC
type LeaveReply struct {
	Durable bool `json:"durable"` // ledger was written successfully
}

// Leave - end a session and force the ledger to disk
func (session *Session) Leave(arguments *AccountArguments, reply *LeaveReply) error {
	if err := ratelimit.Limit(session.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Account {
		return fault.ErrMissingParameters
	}

	id := *arguments.Account
	if !session.Sessions.Leave(id) {
		return fault.ErrSessionNotFound
	}

	err := session.Flusher.Flush()
	if nil != err {
		session.Log.Errorf("Session.Leave: %s  flush error: %s", id, err)
	}
	session.Log.Infof("Session.Leave: %s", id)

	reply.Durable = nil == err
	return nil
}

// Poll
// ----

// PollReply - result from RPC
type PollReply struct {
	Messages []presence.Message `json:"messages"`
}

// Poll - collect pending notifications
func (session *Session) Poll(arguments *AccountArguments, reply *PollReply) error {
	if err := ratelimit.Limit(session.Limiter); nil != err {
		return err
	}
	if nil == arguments || nil == arguments.Account {
		return fault.ErrMissingParameters
	}

	messages, ok := session.Sessions.Drain(*arguments.Account)
	if !ok {
		return fault.ErrSessionNotFound
	}
	reply.Messages = messages
	return nil
}
