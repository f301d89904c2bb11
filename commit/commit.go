// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package commit holds the commit references blocks vote for.
package commit

import (
	"fmt"

	"github.com/vechain/dagbft/thor"
)

// Index is the position of a commit in the committed sequence.
type Index uint32

// Ref uniquely identifies a commit.
type Ref struct {
	Index  Index
	Digest thor.Bytes32
}

// Vote is a block's vote for a commit. It is opaque to the block layer.
type Vote = Ref

// Compare orders by index, then digest.
func (r Ref) Compare(other Ref) int {
	switch {
	case r.Index < other.Index:
		return -1
	case r.Index > other.Index:
		return 1
	}
	return r.Digest.Compare(other.Digest)
}

func (r Ref) String() string {
	return fmt.Sprintf("C%d(%s)", r.Index, r.Digest.AbbrevString())
}
