// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"

	"github.com/vechain/dagbft/committee"
)

// GenesisBlocks returns one unsigned round 0 block per authority, in authority
// index order. The result is deterministic for a given epoch and committee size.
func GenesisBlocks(c Committee) []*VerifiedBlock {
	blocks := make([]*VerifiedBlock, 0, c.Size())
	for i := range c.Size() {
		signed := newGenesisSignedBlock(newGenesisBlockV1(c.Epoch(), committee.AuthorityIndex(i)))
		serialized, err := signed.Serialize()
		if err != nil {
			panic(fmt.Sprintf("genesis block serialization failed: %v", err))
		}
		blocks = append(blocks, NewVerifiedBlock(signed, serialized))
	}
	return blocks
}
