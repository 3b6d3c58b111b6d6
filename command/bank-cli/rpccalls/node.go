// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/bankd/rpc/interest"
	"github.com/bitmark-inc/bankd/rpc/node"
)

// GetInfo - daemon status
func (c *Client) GetInfo() (*node.InfoReply, error) {
	reply := &node.InfoReply{}
	err := c.call("Node.Info", "Info", node.InfoArguments{}, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// Backup - timestamped copy of the ledger document
func (c *Client) Backup() (*node.BackupReply, error) {
	reply := &node.BackupReply{}
	err := c.call("Node.Backup", "Backup", node.BackupArguments{}, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// InterestRun - start an accrual run
func (c *Client) InterestRun() (*interest.RunNowReply, error) {
	reply := &interest.RunNowReply{}
	err := c.call("Interest.RunNow", "Interest", interest.RunNowArguments{}, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// InterestStatus - scheduler state
func (c *Client) InterestStatus() (*interest.StatusReply, error) {
	reply := &interest.StatusReply{}
	err := c.call("Interest.Status", "Interest Status", interest.StatusArguments{}, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}
