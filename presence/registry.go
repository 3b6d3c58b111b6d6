// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package presence

import (
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/bankd/account"
)

const (
	defaultMailboxSize = 20
)

// Message - a notification waiting for delivery
type Message struct {
	Time time.Time `json:"time"`
	Text string    `json:"text"`
}

type session struct {
	sync.Mutex
	exempt   bool
	joined   time.Time
	messages []Message
}

// Registry - active sessions that expire unless refreshed
//
// implements both Presence and Notifier; messages for an account
// without an active session are dropped
type Registry struct {
	log      *logger.L
	sessions *cache.Cache
	mailbox  int

	sync.RWMutex
	exempt map[account.Identifier]bool
}

// NewRegistry - create a registry where a session lapses after ttl
// without a refresh
func NewRegistry(ttl time.Duration) *Registry {
	log := logger.New("presence")

	cleanup := ttl / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}
	sessions := cache.New(ttl, cleanup)
	sessions.OnEvicted(func(key string, _ interface{}) {
		log.Infof("session ended: %s", key)
	})

	return &Registry{
		log:      log,
		sessions: sessions,
		mailbox:  defaultMailboxSize,
		exempt:   make(map[account.Identifier]bool),
	}
}

// Join - open or replace a session
//
// the exemption is also remembered after the session ends
func (r *Registry) Join(id account.Identifier, exempt bool) {
	r.Lock()
	r.exempt[id] = exempt
	r.Unlock()

	r.sessions.Set(id.String(), &session{
		exempt: exempt,
		joined: time.Now(),
	}, cache.DefaultExpiration)

	r.log.Infof("join: %s  exempt: %t", id, exempt)
}

// Refresh - extend a session, false if there is none
func (r *Registry) Refresh(id account.Identifier) bool {
	s, ok := r.get(id)
	if !ok {
		return false
	}
	return nil == r.sessions.Replace(id.String(), s, cache.DefaultExpiration)
}

// Leave - close a session, false if there was none
func (r *Registry) Leave(id account.Identifier) bool {
	if _, ok := r.get(id); !ok {
		return false
	}
	r.sessions.Delete(id.String())
	return true
}

// IsActive - true while a session is open
func (r *Registry) IsActive(id account.Identifier) bool {
	_, ok := r.get(id)
	return ok
}

// IsExempt - true if an open session holds the exemption
func (r *Registry) IsExempt(id account.Identifier) bool {
	s, ok := r.get(id)
	if !ok {
		return false
	}
	return s.exempt
}

// KnownExempt - the exemption seen at the most recent join
func (r *Registry) KnownExempt(id account.Identifier) bool {
	r.RLock()
	defer r.RUnlock()
	return r.exempt[id]
}

// Count - number of open sessions
func (r *Registry) Count() int {
	return r.sessions.ItemCount()
}

// InterestEarned - tell an active account holder about credited interest
func (r *Registry) InterestEarned(id account.Identifier, interest decimal.Decimal, balance decimal.Decimal) {
	r.deliver(id, fmt.Sprintf("You earned %s in interest. Your bank balance is now %s.", interest.StringFixed(2), balance.StringFixed(2)))
}

// Balance - tell an active account holder their bank balance
func (r *Registry) Balance(id account.Identifier, balance decimal.Decimal) {
	r.deliver(id, fmt.Sprintf("Your bank balance is %s.", balance.StringFixed(2)))
}

// Drain - remove and return waiting messages
func (r *Registry) Drain(id account.Identifier) ([]Message, bool) {
	s, ok := r.get(id)
	if !ok {
		return nil, false
	}
	s.Lock()
	defer s.Unlock()
	messages := s.messages
	s.messages = nil
	if nil == messages {
		messages = []Message{}
	}
	return messages, true
}

func (r *Registry) deliver(id account.Identifier, text string) {
	s, ok := r.get(id)
	if !ok {
		r.log.Debugf("drop message for inactive: %s", id)
		return
	}

	s.Lock()
	defer s.Unlock()
	if len(s.messages) >= r.mailbox {
		s.messages = s.messages[1:]
	}
	s.messages = append(s.messages, Message{
		Time: time.Now().UTC(),
		Text: text,
	})
}

func (r *Registry) get(id account.Identifier) (*session, bool) {
	item, ok := r.sessions.Get(id.String())
	if !ok {
		return nil, false
	}
	return item.(*session), true
}
