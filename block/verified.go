// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"bytes"
	"fmt"
)

// VerifiedBlock is a block that passed verification, or was created locally.
// It's immutable and safe for concurrent use; share it by pointer.
type VerifiedBlock struct {
	Block

	signed     *SignedBlock
	digest     BlockDigest
	serialized []byte
}

// NewVerifiedBlock promotes signed with its serialized form. The caller
// guarantees that signed has been verified and that serialized is its
// encoding. serialized is copied and the digest is computed here, once.
func NewVerifiedBlock(signed *SignedBlock, serialized []byte) *VerifiedBlock {
	serialized = bytes.Clone(serialized)
	return &VerifiedBlock{
		Block:      signed.block,
		signed:     signed,
		digest:     ComputeDigest(serialized),
		serialized: serialized,
	}
}

// Digest returns the identity digest.
func (v *VerifiedBlock) Digest() BlockDigest {
	return v.digest
}

// Reference returns (round, author, digest).
func (v *VerifiedBlock) Reference() BlockRef {
	return BlockRef{Round: v.Round(), Author: v.Author(), Digest: v.digest}
}

// Serialized returns the encoded signed block. The returned slice must not be modified.
func (v *VerifiedBlock) Serialized() []byte {
	return v.serialized
}

// SignedBlock returns the wire envelope.
func (v *VerifiedBlock) SignedBlock() *SignedBlock {
	return v.signed
}

// Signature returns a copy of the signature bytes.
func (v *VerifiedBlock) Signature() []byte {
	return v.signed.Signature()
}

// Equal compares identity digests.
func (v *VerifiedBlock) Equal(other *VerifiedBlock) bool {
	return v.digest == other.digest
}

func (v *VerifiedBlock) String() string {
	return v.Reference().String()
}

// GoString renders a debug view: reference, timestamp, ancestors and counts.
func (v *VerifiedBlock) GoString() string {
	return fmt.Sprintf("%#v(%dms;%v;%dt;%dc)",
		v.Reference(),
		v.TimestampMs(),
		v.Ancestors(),
		len(v.Transactions()),
		len(v.CommitVotes()),
	)
}
