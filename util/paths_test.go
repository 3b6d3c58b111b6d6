// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bankd/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/bank.json", util.EnsureAbsolute("/data", "bank.json"), "relative not joined")
	assert.Equal(t, "/other/bank.json", util.EnsureAbsolute("/data", "/other/bank.json"), "absolute changed")
	assert.Equal(t, "/data/bank.json", util.EnsureAbsolute("/data", "./x/../bank.json"), "not cleaned")
}

func TestTimestampedName(t *testing.T) {
	when := time.Unix(1577836800, 123*int64(time.Millisecond))
	assert.Equal(t, "/data/bank_backup_1577836800123.json", util.TimestampedName("/data/bank.json", "backup", when), "wrong backup name")
	assert.Equal(t, "bank_backup_1577836800123", util.TimestampedName("bank", "backup", when), "wrong name without extension")
}
