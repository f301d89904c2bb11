// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"cmp"
	"fmt"

	"github.com/vechain/dagbft/committee"
	"github.com/vechain/dagbft/thor"
)

// Slot is a position in the DAG. It may hold zero, one or several blocks
// from the same authority at the same round.
type Slot struct {
	Round     Round
	Authority committee.AuthorityIndex
}

// NewSlot creates a slot.
func NewSlot(round Round, authority committee.AuthorityIndex) Slot {
	return Slot{Round: round, Authority: authority}
}

// Compare orders by round, then authority.
func (s Slot) Compare(other Slot) int {
	if c := cmp.Compare(s.Round, other.Round); c != 0 {
		return c
	}
	return cmp.Compare(s.Authority, other.Authority)
}

// String renders the slot as authority followed by round, e.g. "B7".
func (s Slot) String() string {
	return fmt.Sprintf("%v%d", s.Authority, s.Round)
}

// BlockRef uniquely identifies a block.
type BlockRef struct {
	Round  Round
	Author committee.AuthorityIndex
	Digest BlockDigest
}

var (
	// MinBlockRef orders before every other BlockRef.
	MinBlockRef = BlockRef{Round: 0, Author: 0, Digest: MinBlockDigest}
	// MaxBlockRef orders after every other BlockRef.
	MaxBlockRef = BlockRef{Round: thor.MaxRound, Author: committee.MaxAuthorityIndex, Digest: MaxBlockDigest}
)

// NewBlockRef creates a reference.
func NewBlockRef(round Round, author committee.AuthorityIndex, digest BlockDigest) BlockRef {
	return BlockRef{Round: round, Author: author, Digest: digest}
}

// Slot returns the slot of the referenced block.
func (r BlockRef) Slot() Slot {
	return Slot{Round: r.Round, Authority: r.Author}
}

// Compare orders by round, then author, then digest.
func (r BlockRef) Compare(other BlockRef) int {
	if c := cmp.Compare(r.Round, other.Round); c != 0 {
		return c
	}
	if c := cmp.Compare(r.Author, other.Author); c != 0 {
		return c
	}
	return r.Digest.Compare(other.Digest)
}

// Less reports whether r orders before other.
func (r BlockRef) Less(other BlockRef) bool {
	return r.Compare(other) < 0
}

// String renders e.g. "B7(C,q2zV)".
func (r BlockRef) String() string {
	return fmt.Sprintf("B%d(%v,%v)", r.Round, r.Author, r.Digest)
}

// GoString renders the reference with the full digest.
func (r BlockRef) GoString() string {
	return fmt.Sprintf("B%d(%v,%#v)", r.Round, r.Author, r.Digest)
}
