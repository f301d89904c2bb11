// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package commit

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dagbft/thor"
)

func TestRefCompare(t *testing.T) {
	low := Ref{Index: 1, Digest: thor.Bytes32{0xff}}
	high := Ref{Index: 2}
	assert.Equal(t, -1, low.Compare(high))
	assert.Equal(t, 1, high.Compare(low))
	assert.Equal(t, 0, low.Compare(low))
	assert.Equal(t, -1, Ref{Index: 1}.Compare(low))
}

func TestRefEncoding(t *testing.T) {
	ref := Ref{Index: 42, Digest: thor.Blake2b([]byte("commit"))}
	data, err := rlp.EncodeToBytes(&ref)
	require.NoError(t, err)

	var decoded Ref
	require.NoError(t, rlp.DecodeBytes(data, &decoded))
	assert.Equal(t, ref, decoded)
	assert.Contains(t, ref.String(), "C42(")
}
