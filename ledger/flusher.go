// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"time"

	"github.com/bitmark-inc/logger"
)

const (
	minimumRetryDelay = time.Second
	maximumRetryDelay = time.Minute
)

// Flusher - background process that rewrites the document after a
// failed save, backing off exponentially between attempts
type Flusher struct {
	log     *logger.L
	ledger  *Ledger
	minimum time.Duration
	maximum time.Duration
}

// NewFlusher - create a flusher with the default delays
func NewFlusher(l *Ledger) *Flusher {
	return NewFlusherWithDelay(l, minimumRetryDelay, maximumRetryDelay)
}

// NewFlusherWithDelay - create a flusher with specific delays
func NewFlusherWithDelay(l *Ledger, minimum time.Duration, maximum time.Duration) *Flusher {
	return &Flusher{
		log:     logger.New("flusher"),
		ledger:  l,
		minimum: minimum,
		maximum: maximum,
	}
}

// Run - background process
func (f *Flusher) Run(args interface{}, shutdown <-chan struct{}) {

	log := f.log
	log.Info("starting…")

	delay := f.minimum

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(delay):
		}

		if f.ledger.IsDurable() {
			delay = f.minimum
			continue loop
		}

		if err := f.ledger.persist(false); nil != err {
			delay *= 2
			if delay > f.maximum {
				delay = f.maximum
			}
			log.Warnf("retry failed, next attempt in: %s", delay)
			continue loop
		}

		log.Info("ledger is durable again")
		delay = f.minimum
	}

	log.Info("shutting down…")
	log.Flush()
}
