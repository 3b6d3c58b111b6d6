// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"sort"

	"github.com/google/uuid"

	"github.com/bitmark-inc/bankd/fault"
)

// Identifier - opaque 128 bit identity of an account holder
//
// maps one to one onto the identity used by the external wallet
type Identifier uuid.UUID

// Nil - the all zero identifier, never a valid account
var Nil Identifier

// New - create a random identifier
func New() Identifier {
	return Identifier(uuid.New())
}

// FromString - parse the canonical text form
func FromString(s string) (Identifier, error) {
	u, err := uuid.Parse(s)
	if nil != err || uuid.Nil == u {
		return Nil, fault.ErrInvalidIdentifier
	}
	return Identifier(u), nil
}

// FromBytes - convert a 16 byte binary form
func FromBytes(b []byte) (Identifier, error) {
	u, err := uuid.FromBytes(b)
	if nil != err {
		return Nil, fault.ErrInvalidIdentifier
	}
	return Identifier(u), nil
}

// String - canonical text form
func (id Identifier) String() string {
	return uuid.UUID(id).String()
}

// Bytes - binary form, suitable as a database key
func (id Identifier) Bytes() []byte {
	b := make([]byte, len(id))
	copy(b, id[:])
	return b
}

// IsNil - true for the all zero identifier
func (id Identifier) IsNil() bool {
	return Nil == id
}

// Less - byte order comparison
func (id Identifier) Less(other Identifier) bool {
	return bytes.Compare(id[:], other[:]) < 0
}

// MarshalText - convert to text for JSON
func (id Identifier) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText - convert from text for JSON
func (id *Identifier) UnmarshalText(s []byte) error {
	a, err := FromString(string(s))
	if nil != err {
		return err
	}
	*id = a
	return nil
}

// Sort - order a list of identifiers in place
func Sort(ids []Identifier) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Less(ids[j])
	})
}
