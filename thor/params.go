// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Constants of the consensus protocol. They are network wide and must never change
// for a running network, since block identities are derived from them.
const (
	MaxRound uint32 = 1<<32 - 1

	// ShortDigestLength is the number of leading digest bytes used for hash-table bucketing.
	ShortDigestLength = 8
)
