// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/committee"
)

type GenesisRef struct {
	Round  block.Round              `json:"round"`
	Author committee.AuthorityIndex `json:"author"`
	Digest block.BlockDigest        `json:"digest"`
}

type Authority struct {
	Index committee.AuthorityIndex `json:"index"`
	Name  string                   `json:"name"`
	committee.Authority
}

type Committee struct {
	Epoch       committee.Epoch `json:"epoch"`
	TotalStake  committee.Stake `json:"totalStake"`
	Authorities []*Authority    `json:"authorities"`
}
