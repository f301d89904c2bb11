// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SignatureLength is the length of a recoverable signature in [R || S || V] form.
const SignatureLength = 65

// Signature is a recoverable secp256k1 signature in [R || S || V] form where V is 0 or 1.
type Signature [SignatureLength]byte

// MalformedError describes why signature bytes failed to parse.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "malformed signature: " + e.Reason
}

// ParseSignature parses raw signature bytes. It accepts exactly one encoding per
// signature: R and S in [1, N), S in the lower half of the order and V in {0, 1}.
func ParseSignature(b []byte) (Signature, error) {
	var sig Signature
	if len(b) != SignatureLength {
		return sig, &MalformedError{fmt.Sprintf("invalid length %d, want %d", len(b), SignatureLength)}
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(b[:32]); overflow {
		return sig, &MalformedError{"r overflows curve order"}
	}
	if r.IsZero() {
		return sig, &MalformedError{"r is zero"}
	}
	if overflow := s.SetByteSlice(b[32:64]); overflow {
		return sig, &MalformedError{"s overflows curve order"}
	}
	if s.IsZero() {
		return sig, &MalformedError{"s is zero"}
	}
	if s.IsOverHalfOrder() {
		return sig, &MalformedError{"s is not canonical"}
	}
	if v := b[64]; v > 1 {
		return sig, &MalformedError{fmt.Sprintf("invalid recovery id %d", v)}
	}
	copy(sig[:], b)
	return sig, nil
}

// Bytes returns the raw bytes.
func (s Signature) Bytes() []byte {
	return s[:]
}

// String implements fmt.Stringer.
func (s Signature) String() string {
	return "0x" + hex.EncodeToString(s[:])
}
