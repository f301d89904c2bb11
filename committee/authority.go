// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package committee

import (
	"fmt"

	"github.com/vechain/dagbft/cry"
)

// Epoch numbers committee reconfigurations.
type Epoch uint64

// Stake is the voting weight of an authority.
type Stake uint64

// AuthorityIndex is the position of an authority in its committee.
type AuthorityIndex uint32

// MaxAuthorityIndex is the largest representable index.
const MaxAuthorityIndex = AuthorityIndex(^uint32(0))

// Value returns the index as an int for slice access.
func (i AuthorityIndex) Value() int {
	return int(i)
}

// String renders indices below 26 as a letter and the rest as a bracketed number.
func (i AuthorityIndex) String() string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return fmt.Sprintf("[%02d]", uint32(i))
}

// Authority is a committee member.
type Authority struct {
	Stake       Stake         `yaml:"stake" json:"stake"`
	Address     string        `yaml:"address" json:"address"`
	Hostname    string        `yaml:"hostname" json:"hostname"`
	ProtocolKey cry.PublicKey `yaml:"protocol_key" json:"protocolKey"`
}
