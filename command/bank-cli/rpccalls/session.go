// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/rpc/session"
)

// Join - open a session
func (c *Client) Join(id account.Identifier, exempt bool) (*session.JoinReply, error) {
	arguments := session.JoinArguments{
		Account: &id,
		Exempt:  exempt,
	}
	reply := &session.JoinReply{}
	err := c.call("Session.Join", "Join", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// Leave - close a session
func (c *Client) Leave(id account.Identifier) (*session.LeaveReply, error) {
	arguments := session.AccountArguments{
		Account: &id,
	}
	reply := &session.LeaveReply{}
	err := c.call("Session.Leave", "Leave", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}

// Poll - collect waiting notifications
func (c *Client) Poll(id account.Identifier) (*session.PollReply, error) {
	arguments := session.AccountArguments{
		Account: &id,
	}
	reply := &session.PollReply{}
	err := c.call("Session.Poll", "Poll", arguments, reply)
	if nil != err {
		return nil, err
	}
	return reply, nil
}
