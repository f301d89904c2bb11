// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"github.com/vechain/dagbft/committee"
	"github.com/vechain/dagbft/cry"
)

// Round is the logical time of the DAG. Genesis blocks are at round 0.
type Round = uint32

// TimestampMs is a block timestamp in milliseconds since the unix epoch.
type TimestampMs = uint64

// Committee is the view of the authority set needed to build and check blocks.
type Committee interface {
	Epoch() committee.Epoch
	Size() int
	IsValidIndex(i committee.AuthorityIndex) bool
	PublicKey(i committee.AuthorityIndex) cry.PublicKey
}
