// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/counter"
	"github.com/bitmark-inc/bankd/fault"
	"github.com/bitmark-inc/bankd/mode"
	"github.com/bitmark-inc/bankd/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100

	rateLimitBackup = 1
	rateBurstBackup = 1
)

// Ledger - ledger health
type Ledger interface {
	Count() int
	Total() decimal.Decimal
	IsDurable() bool
	Failures() uint64
	Flush() error
}

// Backuper - copies the durable document
type Backuper interface {
	Backup() (string, error)
}

// Sessions - open session count
type Sessions interface {
	Count() int
}

// Node - type for RPC calls
type Node struct {
	Log           *logger.L
	Limiter       *rate.Limiter
	BackupLimiter *rate.Limiter
	IsNormalMode  func(mode.Mode) bool
	Start         time.Time
	Version       string
	Ledger        Ledger
	Backuper      Backuper
	Sessions      Sessions
	counter       *counter.Counter
}

// New - create the RPC handler
func New(log *logger.L, isNormalMode func(mode.Mode) bool, start time.Time, version string, counter *counter.Counter, l Ledger, backuper Backuper, sessions Sessions) *Node {
	return &Node{
		Log:           log,
		Limiter:       rate.NewLimiter(rateLimitNode, rateBurstNode),
		BackupLimiter: rate.NewLimiter(rateLimitBackup, rateBurstBackup),
		IsNormalMode:  isNormalMode,
		Start:         start,
		Version:       version,
		Ledger:        l,
		Backuper:      backuper,
		Sessions:      sessions,
		counter:       counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Mode     string     `json:"mode"`
	Version  string     `json:"version"`
	Uptime   string     `json:"uptime"`
	RPCs     uint64     `json:"rpcs"`
	Sessions int        `json:"sessions"`
	Ledger   LedgerInfo `json:"ledger"`
}

// LedgerInfo - ledger size and persistence health
type LedgerInfo struct {
	Accounts int    `json:"accounts"`
	Total    string `json:"total"`
	Durable  bool   `json:"durable"`
	Failures uint64 `json:"failures"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {
	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Mode = mode.String()
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.RPCs = node.counter.Uint64()
	reply.Sessions = node.Sessions.Count()
	reply.Ledger = LedgerInfo{
		Accounts: node.Ledger.Count(),
		Total:    node.Ledger.Total().String(),
		Durable:  node.Ledger.IsDurable(),
		Failures: node.Ledger.Failures(),
	}
	return nil
}

// BackupArguments - empty arguments for backup request
type BackupArguments struct{}

// BackupReply - results from backup request
type BackupReply struct {
	FileName string `json:"fileName"`
}

// Backup - write the ledger and copy the document aside
func (node *Node) Backup(_ *BackupArguments, reply *BackupReply) error {
	if err := ratelimit.Limit(node.BackupLimiter); nil != err {
		return err
	}
	if !node.IsNormalMode(mode.Normal) {
		return fault.ErrNotAvailableDuringRecovery
	}

	if err := node.Ledger.Flush(); nil != err {
		return err
	}

	fileName, err := node.Backuper.Backup()
	if nil != err {
		node.Log.Errorf("Node.Backup: error: %s", err)
		return err
	}

	node.Log.Infof("Node.Backup: %q", fileName)
	reply.FileName = fileName
	return nil
}
