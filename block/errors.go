// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"errors"
	"fmt"

	"github.com/vechain/dagbft/committee"
)

// InvalidAuthorityIndexError is returned when a block names an author outside the committee.
type InvalidAuthorityIndexError struct {
	Index committee.AuthorityIndex
	Max   int
}

func (e *InvalidAuthorityIndexError) Error() string {
	return fmt.Sprintf("invalid authority index %d, max %d", uint32(e.Index), e.Max)
}

// MalformedSignatureError is returned when signature bytes cannot be parsed.
type MalformedSignatureError struct {
	Err error
}

func (e *MalformedSignatureError) Error() string {
	return fmt.Sprintf("malformed signature: %v", e.Err)
}

func (e *MalformedSignatureError) Unwrap() error { return e.Err }

// SignatureVerificationError is returned when a well formed signature does not
// match the author's key.
type SignatureVerificationError struct {
	Err error
}

func (e *SignatureVerificationError) Error() string {
	return fmt.Sprintf("signature verification failed: %v", e.Err)
}

func (e *SignatureVerificationError) Unwrap() error { return e.Err }

// SerializationError is returned when a block cannot be encoded or decoded.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization failure: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// IsInvalidAuthorityIndex reports whether err is an InvalidAuthorityIndexError.
func IsInvalidAuthorityIndex(err error) bool {
	var e *InvalidAuthorityIndexError
	return errors.As(err, &e)
}

// IsMalformedSignature reports whether err is a MalformedSignatureError.
func IsMalformedSignature(err error) bool {
	var e *MalformedSignatureError
	return errors.As(err, &e)
}

// IsSignatureVerification reports whether err is a SignatureVerificationError.
func IsSignatureVerification(err error) bool {
	var e *SignatureVerificationError
	return errors.As(err, &e)
}

// IsSerialization reports whether err is a SerializationError.
func IsSerialization(err error) bool {
	var e *SerializationError
	return errors.As(err, &e)
}
