// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"fmt"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ArithmeticError GenericError
type AuthorizationError GenericError
type CollaboratorError GenericError
type ExistsError GenericError
type FormatError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type TimeFormatError GenericError
type ValidationError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised           = ExistsError("already initialised")
	BadArithmeticType            = ArithmeticError("bad type for arithmetic")
	CannotDecodeAccount          = FormatError("cannot decode account")
	CannotDecodePrivateKey       = FormatError("cannot decode private key")
	CertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ChecksumMismatch             = FormatError("checksum mismatch")
	ConfigurationFileIsMissing   = NotFoundError("configuration file is missing")
	ConfigurationIsNotATable     = InvalidError("configuration did not return a table")
	ConnectionsExhausted         = ProcessError("connection limit reached")
	CountersignatureMissing      = ValidationError("countersignature missing")
	CountersignRefused           = CollaboratorError("countersign refused")
	DeliveryQueueFull            = CollaboratorError("delivery queue full")
	DivisionByZero               = ArithmeticError("division by zero")
	EntryAlreadyExists           = ExistsError("entry already exists")
	EntryNotFound                = NotFoundError("entry not found")
	FactorNotFinite              = ArithmeticError("factor is not a finite number")
	HeaderIsInvalid              = ValidationError("header is invalid")
	IdentityFileIsMissing        = NotFoundError("identity file is missing")
	IdentityNotFound             = NotFoundError("identity not found")
	InitNotFound                 = NotFoundError("init record not found")
	InitNotOpen                  = ValidationError("init record is already resolved")
	InvalidAmount                = FormatError("invalid amount")
	InvalidAmountRange           = FormatError("amount out of range")
	InvalidCount                 = InvalidError("invalid count")
	InvalidCursor                = InvalidError("invalid cursor")
	InvalidIPAddress             = InvalidError("invalid IP address")
	InvalidKeyLength             = FormatError("invalid key length")
	InvalidKeyType               = FormatError("invalid key type")
	InvalidLink                  = FormatError("invalid link")
	InvalidPackage               = ValidationError("invalid package")
	InvalidPeerConfiguration     = InvalidError("invalid peer configuration")
	InvalidPortNumber            = InvalidError("invalid port number")
	InvalidPrivateKeyFile        = FormatError("invalid private key file")
	InvalidProperty              = InvalidError("invalid ledger property")
	InvalidPublicKeyFile         = FormatError("invalid public key file")
	InvalidSignature             = ValidationError("invalid signature")
	InvalidTimeout               = InvalidError("invalid timeout")
	KeyFileAlreadyExists         = ExistsError("key file already exists")
	KindIsNotInit                = ValidationError("referenced record is not an init")
	MessageIsInvalid             = FormatError("message is invalid")
	MissingParameters            = InvalidError("missing parameters")
	NegativeTransferAmount       = FormatError("transfer amount must not be negative")
	NoResponseFromPeer           = CollaboratorError("no response from peer")
	NotAnAmount                  = FormatError("number has sub-integer component")
	NotConnected                 = CollaboratorError("not connected")
	NotesTooLong                 = FormatError("notes too long")
	NotImplemented               = ProcessError("not implemented")
	NotInitialised               = ProcessError("not initialised")
	NotPartyToTransaction        = ValidationError("chain owner is not a party to the transaction")
	NotRecipient                 = AuthorizationError("this agent is not the recipient on this transaction")
	NotSpender                   = AuthorizationError("this agent is not the spender on this transaction")
	NotTransactionPack           = FormatError("not transaction pack")
	OverCreditLimit              = ValidationError("over credit limit")
	OverMaxTransactionAmount     = ValidationError("over max transaction amount")
	PeerNotFound                 = CollaboratorError("peer not found")
	RateLimiting                 = InvalidError("rate limiting")
	ResolutionInProgress         = ValidationError("init record has a resolution in progress")
	SameParties                  = InvalidError("spender and recipient must differ")
	SignatureTooLong             = FormatError("signature too long")
	TimeNotParsable              = TimeFormatError("could not parse time value")
	UnknownCommand               = InvalidError("unknown command")
	UnknownRecordKind            = FormatError("unknown record kind")
	ValidationFailed             = ValidationError("validation failed")
	WrongChainOwner              = ValidationError("record signer is not the chain owner")
	WrongNetworkForPublicKey     = InvalidError("wrong network for public key")
	WrongPassphrase              = InvalidError("wrong passphrase")
	WrongSequence                = ValidationError("header sequence does not follow chain")
)

// the error interface methods
func (e GenericError) Error() string       { return string(e) }
func (e ArithmeticError) Error() string    { return string(e) }
func (e AuthorizationError) Error() string { return string(e) }
func (e CollaboratorError) Error() string  { return string(e) }
func (e ExistsError) Error() string        { return string(e) }
func (e FormatError) Error() string        { return string(e) }
func (e InvalidError) Error() string       { return string(e) }
func (e NotFoundError) Error() string      { return string(e) }
func (e ProcessError) Error() string       { return string(e) }
func (e TimeFormatError) Error() string    { return string(e) }
func (e ValidationError) Error() string    { return string(e) }

// determine the class of an error
func IsErrArithmetic(e error) bool    { _, ok := e.(ArithmeticError); return ok }
func IsErrAuthorization(e error) bool { _, ok := e.(AuthorizationError); return ok }
func IsErrCollaborator(e error) bool  { _, ok := e.(CollaboratorError); return ok }
func IsErrExists(e error) bool        { _, ok := e.(ExistsError); return ok }
func IsErrFormat(e error) bool        { _, ok := e.(FormatError); return ok }
func IsErrInvalid(e error) bool       { _, ok := e.(InvalidError); return ok }
func IsErrNotFound(e error) bool      { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool       { _, ok := e.(ProcessError); return ok }
func IsErrTimeFormat(e error) bool    { _, ok := e.(TimeFormatError); return ok }
func IsErrValidation(e error) bool    { _, ok := e.(ValidationError); return ok }

// IsClassified - true if the error belongs to one of the classes above
func IsClassified(e error) bool {
	switch e.(type) {
	case GenericError, ArithmeticError, AuthorizationError,
		CollaboratorError, ExistsError, FormatError, InvalidError,
		NotFoundError, ProcessError, TimeFormatError, ValidationError:
		return true
	default:
		return false
	}
}

// Collaborator - surface a store or messaging failure opaquely
//
// classified errors pass through so that a refusal reported by a
// collaborator keeps its meaning
func Collaborator(operation string, err error) error {
	if nil == err {
		return nil
	}
	if IsClassified(err) {
		return err
	}
	return CollaboratorError(fmt.Sprintf("%s: %s", operation, err))
}

// class names carried with errors returned by peers
const (
	classArithmetic    = "arithmetic"
	classAuthorization = "authorization"
	classCollaborator  = "collaborator"
	classExists        = "exists"
	classFormat        = "format"
	classInvalid       = "invalid"
	classNotFound      = "notfound"
	classProcess       = "process"
	classTimeFormat    = "timeformat"
	classValidation    = "validation"
)

// Class - name of the error's class for transmission to a peer
func Class(e error) string {
	switch e.(type) {
	case ArithmeticError:
		return classArithmetic
	case AuthorizationError:
		return classAuthorization
	case ExistsError:
		return classExists
	case FormatError:
		return classFormat
	case InvalidError:
		return classInvalid
	case NotFoundError:
		return classNotFound
	case ProcessError:
		return classProcess
	case TimeFormatError:
		return classTimeFormat
	case ValidationError:
		return classValidation
	default:
		return classCollaborator
	}
}

// Rebuild - error of the named class received from a peer
//
// the result compares equal to the local error with the same text
func Rebuild(class string, message string) error {
	switch class {
	case classArithmetic:
		return ArithmeticError(message)
	case classAuthorization:
		return AuthorizationError(message)
	case classExists:
		return ExistsError(message)
	case classFormat:
		return FormatError(message)
	case classInvalid:
		return InvalidError(message)
	case classNotFound:
		return NotFoundError(message)
	case classProcess:
		return ProcessError(message)
	case classTimeFormat:
		return TimeFormatError(message)
	case classValidation:
		return ValidationError(message)
	default:
		return CollaboratorError(message)
	}
}
