// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blockstore

import (
	"path/filepath"
	"testing"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/block/blocktest"
	"github.com/vechain/dagbft/committee"
)

func newTestStore(t *testing.T) *Store {
	s, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func buildRound(t *testing.T, round block.Round, n int, ts block.TimestampMs) []*block.VerifiedBlock {
	blocks := make([]*block.VerifiedBlock, 0, n)
	for i := range n {
		blk := blocktest.New(round, uint32(i)).SetTimestampMs(ts).Build()
		blocks = append(blocks, blocktest.NewVerified(t, blk))
	}
	return blocks
}

func TestKeyOrder(t *testing.T) {
	refs := []block.BlockRef{
		block.MinBlockRef,
		block.NewBlockRef(1, 0, block.MaxBlockDigest),
		block.NewBlockRef(1, 1, block.MinBlockDigest),
		block.NewBlockRef(2, 0, block.MinBlockDigest),
		block.NewBlockRef(256, 0, block.MinBlockDigest),
		block.MaxBlockRef,
	}
	for i := 1; i < len(refs); i++ {
		a, b := makeRefKey(refs[i-1]), makeRefKey(refs[i])
		assert.Negative(t, refs[i-1].Compare(refs[i]))
		assert.Less(t, string(a[:]), string(b[:]))

		ref, ok := parseRefKey(b[:])
		assert.True(t, ok)
		assert.Equal(t, refs[i], ref)
	}

	_, ok := parseRefKey([]byte{1, 2, 3})
	assert.False(t, ok)
}

func TestWriteGet(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, block.Round(0), s.LastRound())

	blocks := buildRound(t, 1, 4, 1000)
	require.NoError(t, s.Write(blocks...))
	assert.Equal(t, block.Round(1), s.LastRound())

	for _, b := range blocks {
		has, err := s.Has(b.Reference())
		require.NoError(t, err)
		assert.True(t, has)

		got, err := s.Get(b.Reference())
		require.NoError(t, err)
		assert.True(t, b.Equal(got))
	}

	// bypass the decoded cache
	s.caches.blocks.Purge()
	got, err := s.Get(blocks[2].Reference())
	require.NoError(t, err)
	assert.Equal(t, blocks[2].Serialized(), got.Serialized())
	assert.Equal(t, blocks[2].Digest(), got.Digest())

	missing := block.NewBlockRef(9, 0, block.MaxBlockDigest)
	has, err := s.Has(missing)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = s.Get(missing)
	assert.True(t, s.IsNotFound(err))
	assert.False(t, s.IsNotFound(errors.New("other")))
}

func TestWriteIdempotent(t *testing.T) {
	s := newTestStore(t)
	blocks := buildRound(t, 3, 2, 1)

	require.NoError(t, s.Write(blocks...))
	require.NoError(t, s.Write(blocks...))
	require.NoError(t, s.Write(blocks[0], blocks[0]))

	got, err := s.Range(block.MinBlockRef, block.MaxBlockRef)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// a lower round never moves LastRound back
	require.NoError(t, s.Write(buildRound(t, 2, 1, 1)...))
	assert.Equal(t, block.Round(3), s.LastRound())
}

func TestSlotEquivocation(t *testing.T) {
	s := newTestStore(t)

	a := blocktest.NewVerified(t, blocktest.New(5, 1).SetTimestampMs(1).Build())
	b := blocktest.NewVerified(t, blocktest.New(5, 1).SetTimestampMs(2).Build())
	other := blocktest.NewVerified(t, blocktest.New(5, 2).Build())
	require.NoError(t, s.Write(a, b, other))

	got, err := s.Slot(block.NewSlot(5, 1))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Negative(t, got[0].Reference().Compare(got[1].Reference()))

	got, err = s.Slot(block.NewSlot(5, 3))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRange(t *testing.T) {
	s := newTestStore(t)
	var all []*block.VerifiedBlock
	for r := block.Round(1); r <= 4; r++ {
		all = append(all, buildRound(t, r, 3, block.TimestampMs(r))...)
	}
	require.NoError(t, s.Write(all...))

	from := block.NewBlockRef(2, 0, block.MinBlockDigest)
	to := block.NewBlockRef(4, 0, block.MinBlockDigest)
	got, err := s.Range(from, to)
	require.NoError(t, err)
	require.Len(t, got, 6)
	for i, b := range got {
		assert.True(t, b.Round() == 2 || b.Round() == 3)
		if i > 0 {
			assert.Negative(t, got[i-1].Reference().Compare(b.Reference()))
		}
	}

	got, err = s.Range(to, from)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCorrupted(t *testing.T) {
	s := newTestStore(t)
	b := blocktest.NewVerified(t, blocktest.New(1, 0).Build())
	require.NoError(t, s.Write(b))

	other := blocktest.NewVerified(t, blocktest.New(1, 0).SetTimestampMs(7).Build())
	key := makeRefKey(b.Reference())
	require.NoError(t, blockBucket.NewPutter(s.db).Put(key[:], snappy.Encode(nil, other.Serialized())))
	s.caches.blocks.Purge()

	_, err := s.Get(b.Reference())
	assert.True(t, errors.Is(err, ErrCorrupted))

	_, err = s.Slot(b.Slot())
	assert.True(t, errors.Is(err, ErrCorrupted))

	require.NoError(t, blockBucket.NewPutter(s.db).Put(key[:], []byte("garbage")))
	_, err = s.Slot(b.Slot())
	assert.True(t, errors.Is(err, ErrCorrupted))
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks")

	s, err := Open(path, Options{})
	require.NoError(t, err)
	blocks := buildRound(t, 7, 2, 1)
	require.NoError(t, s.Write(blocks...))
	require.NoError(t, s.Close())

	s, err = Open(path, Options{BlockCacheSize: 1, RawCacheMB: 1})
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, block.Round(7), s.LastRound())
	got, err := s.Slot(block.NewSlot(7, committee.AuthorityIndex(1)))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, blocks[1].Equal(got[0]))
}
