// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package intent - write-ahead records for transfers that cross
// between the wallet and the ledger
//
// a record is written before the first side effect, advanced after
// it and removed when both sides are done.  Records still present at
// start up belong to transfers interrupted by a crash.
package intent

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/storage"
)

// Kind - direction of the transfer
type Kind string

// Stage - progress of the transfer
type Stage string

// transfer directions
const (
	Deposit  Kind = "deposit"  // wallet -> ledger
	Withdraw Kind = "withdraw" // ledger -> wallet
)

// transfer progress
const (
	Reserved    Stage = "reserved"    // nothing done yet, or first step outcome unknown
	Transferred Stage = "transferred" // first step done, second pending
	Settled     Stage = "settled"     // both steps done, ledger write not yet durable
)

// Intent - one unfinished transfer
type Intent struct {
	ID      uuid.UUID          `json:"id"`
	Kind    Kind               `json:"kind"`
	Account account.Identifier `json:"account"`
	Amount  decimal.Decimal    `json:"amount"`
	Before  decimal.Decimal    `json:"before"` // ledger balance when the transfer began
	Stage   Stage              `json:"stage"`
	Created time.Time          `json:"created"`
}

// Log - intent records kept in a storage pool
type Log struct {
	log  *logger.L
	pool storage.Handle
}

// New - create an intent log on a storage pool
func New(pool storage.Handle) *Log {
	return &Log{
		log:  logger.New("intent"),
		pool: pool,
	}
}

// Begin - record a transfer before anything is changed
func (l *Log) Begin(kind Kind, id account.Identifier, amount decimal.Decimal, before decimal.Decimal) (*Intent, error) {
	switch kind {
	case Deposit, Withdraw:
	default:
		return nil, fault.ErrInvalidIntent
	}

	in := &Intent{
		ID:      uuid.New(),
		Kind:    kind,
		Account: id,
		Amount:  amount,
		Before:  before,
		Stage:   Reserved,
		Created: time.Now().UTC(),
	}
	if err := l.write(in); nil != err {
		return nil, err
	}
	l.log.Debugf("begin: %s %s  account: %s  amount: %s", in.ID, kind, id, amount)
	return in, nil
}

// Advance - record that the first step is done
func (l *Log) Advance(in *Intent, stage Stage) error {
	in.Stage = stage
	return l.write(in)
}

// Complete - forget a finished transfer
func (l *Log) Complete(in *Intent) error {
	l.log.Debugf("complete: %s", in.ID)
	return l.pool.Delete(in.ID[:])
}

// Pending - all unfinished transfers, oldest first
func (l *Log) Pending() ([]*Intent, error) {
	intents := make([]*Intent, 0)
	err := l.pool.Map(func(key []byte, value []byte) error {
		var in Intent
		if err := json.Unmarshal(value, &in); nil != err {
			l.log.Errorf("corrupt intent: %x  error: %s", key, err)
			return fault.ErrInvalidIntent
		}
		intents = append(intents, &in)
		return nil
	})
	if nil != err {
		return nil, err
	}

	sort.SliceStable(intents, func(i, j int) bool {
		return intents[i].Created.Before(intents[j].Created)
	})
	return intents, nil
}

func (l *Log) write(in *Intent) error {
	data, err := json.Marshal(in)
	if nil != err {
		return err
	}
	return l.pool.Put(in.ID[:], data)
}
