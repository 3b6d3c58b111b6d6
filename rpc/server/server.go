// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/counter"
	"github.com/bitmark-inc/bankd/mode"
	"github.com/bitmark-inc/bankd/presence"
	"github.com/bitmark-inc/bankd/rpc/bank"
	"github.com/bitmark-inc/bankd/rpc/interest"
	"github.com/bitmark-inc/bankd/rpc/ledger"
	"github.com/bitmark-inc/bankd/rpc/node"
	"github.com/bitmark-inc/bankd/rpc/session"
)

// Registry - session registry seen by the RPC services
type Registry interface {
	session.Sessions
	presence.Notifier
	Count() int
}

// Dependencies - everything the RPC services call into
type Dependencies struct {
	Bank     bank.Transactor
	Store    ledger.Store
	Wallet   session.Registrar
	Registry Registry
	Ledger   node.Ledger
	Backuper node.Backuper
	Interest interest.Runner
	Options  session.Options
}

// Create - a server with every service registered
func Create(log *logger.L, version string, rpcCount *counter.Counter, deps Dependencies) *rpc.Server {

	start := time.Now().UTC()

	server := rpc.NewServer()

	_ = server.Register(bank.New(log, mode.Is, deps.Bank))
	_ = server.Register(ledger.New(log, mode.Is, deps.Store))
	_ = server.Register(session.New(log, mode.Is, deps.Wallet, deps.Registry, deps.Registry, deps.Bank, deps.Ledger, deps.Options))
	_ = server.Register(interest.New(log, mode.Is, deps.Interest))
	_ = server.Register(node.New(log, mode.Is, start, version, rpcCount, deps.Ledger, deps.Backuper, deps.Registry))

	return server
}
