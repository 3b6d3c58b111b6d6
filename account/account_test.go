// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/bankd/account"
	"github.com/bitmark-inc/bankd/fault"
)

const (
	lowText  = "0d1f6b9a-51e6-4bd5-9a8e-0a6d7fd0e001"
	highText = "f0e1d2c3-b4a5-4697-8879-6a5b4c3d2e1f"
)

func TestFromString(t *testing.T) {
	id, err := account.FromString(lowText)
	assert.Nil(t, err, "valid identifier")
	assert.Equal(t, lowText, id.String(), "wrong text form")

	b, err := account.FromBytes(id.Bytes())
	assert.Nil(t, err, "valid bytes")
	assert.Equal(t, id, b, "bytes round trip")
}

func TestFromStringInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"not-a-uuid",
		"00000000-0000-0000-0000-000000000000",
		"0d1f6b9a-51e6-4bd5-9a8e-0a6d7fd0e0",
	} {
		_, err := account.FromString(s)
		assert.Equal(t, fault.ErrInvalidIdentifier, err, "accepted: %q", s)
	}
}

func TestOrdering(t *testing.T) {
	low, _ := account.FromString(lowText)
	high, _ := account.FromString(highText)

	assert.True(t, low.Less(high), "low before high")
	assert.False(t, high.Less(low), "high after low")
	assert.False(t, low.Less(low), "not less than self")

	ids := []account.Identifier{high, low}
	account.Sort(ids)
	assert.Equal(t, []account.Identifier{low, high}, ids, "wrong sort order")
}

func TestJSON(t *testing.T) {
	id := account.New()
	assert.False(t, id.IsNil(), "new must not be nil")

	type holder struct {
		Account account.Identifier `json:"account"`
	}

	b, err := json.Marshal(holder{Account: id})
	assert.Nil(t, err, "marshal")
	assert.Equal(t, `{"account":"`+id.String()+`"}`, string(b), "wrong JSON")

	var h holder
	err = json.Unmarshal([]byte(`{"account":"bad"}`), &h)
	assert.Equal(t, fault.ErrInvalidIdentifier, err, "bad identifier accepted")
}
