// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InsufficientError GenericError
type InvalidError GenericError
type LimitError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccountNotFound              = NotFoundError("account not found")
	ErrAlreadyInitialised           = ExistsError("already initialised")
	ErrBankLimitReached             = LimitError("bank limit reached")
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrConfigurationNotTable        = InvalidError("configuration did not return a table")
	ErrInsufficientBankFunds        = InsufficientError("insufficient bank funds")
	ErrInsufficientFunds            = InsufficientError("insufficient funds")
	ErrInterestDisabled             = ProcessError("interest is disabled")
	ErrInvalidAmount                = InvalidError("invalid amount")
	ErrInvalidCount                 = InvalidError("invalid count")
	ErrInvalidDocumentVersion       = InvalidError("invalid document version")
	ErrInvalidIdentifier            = InvalidError("invalid account identifier")
	ErrInvalidInterval              = InvalidError("invalid interval")
	ErrInvalidIntent                = InvalidError("invalid intent record")
	ErrInvalidIpAddress             = InvalidError("invalid IP address")
	ErrInvalidRate                  = InvalidError("invalid interest rate")
	ErrInvalidStructPointer         = InvalidError("invalid struct pointer")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrNotAvailableDuringRecovery   = ProcessError("not available during recovery")
	ErrNotInitialised               = NotFoundError("not initialised")
	ErrPersistenceFailure           = ProcessError("persistence failure")
	ErrRateLimiting                 = LimitError("rate limiting")
	ErrSessionNotFound              = NotFoundError("session not found")
	ErrUnresolvedIntent             = ProcessError("unresolved intent")
	ErrWalletFailure                = ProcessError("wallet failure")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string       { return string(e) }
func (e InsufficientError) Error() string { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e LimitError) Error() string        { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e ProcessError) Error() string      { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool       { _, ok := e.(ExistsError); return ok }
func IsErrInsufficient(e error) bool { _, ok := e.(InsufficientError); return ok }
func IsErrInvalid(e error) bool      { _, ok := e.(InvalidError); return ok }
func IsErrLimit(e error) bool        { _, ok := e.(LimitError); return ok }
func IsErrNotFound(e error) bool     { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool      { _, ok := e.(ProcessError); return ok }
