// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block_test

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/block/blocktest"
	"github.com/vechain/dagbft/commit"
	"github.com/vechain/dagbft/committee"
	"github.com/vechain/dagbft/cry"
	"github.com/vechain/dagbft/thor"
)

func TestSignAndVerify(t *testing.T) {
	c, keys := blocktest.Committee(t, 0, 4)

	// authority 2 signs its own block
	signed := blocktest.Sign(t, blocktest.New(10, 2).Build(), keys[2])
	assert.NoError(t, signed.VerifySignature(c))

	// the same content signed with authority 1's key
	signed = blocktest.Sign(t, blocktest.New(10, 2).Build(), keys[1])
	err := signed.VerifySignature(c)
	require.Error(t, err)

	var verr *block.SignatureVerificationError
	require.True(t, errors.As(err, &verr))
	assert.ErrorIs(t, err, cry.ErrInvalidSignature)
	assert.True(t, block.IsSignatureVerification(err))
	assert.False(t, block.IsMalformedSignature(err))
}

func TestVerifySignatureErrors(t *testing.T) {
	c, keys := blocktest.Committee(t, 0, 4)

	t.Run("invalid author", func(t *testing.T) {
		signed := blocktest.Sign(t, blocktest.New(1, 4).Build(), keys[0])
		err := signed.VerifySignature(c)

		var ierr *block.InvalidAuthorityIndexError
		require.True(t, errors.As(err, &ierr))
		assert.Equal(t, committee.AuthorityIndex(4), ierr.Index)
		assert.Equal(t, 3, ierr.Max)
		assert.True(t, block.IsInvalidAuthorityIndex(err))
	})

	t.Run("empty signature", func(t *testing.T) {
		signed := blocktest.Sign(t, blocktest.New(1, 0).Build(), nil)
		err := signed.VerifySignature(c)
		assert.True(t, block.IsMalformedSignature(err), "got %v", err)

		var merr *cry.MalformedError
		assert.True(t, errors.As(err, &merr))
	})

	t.Run("truncated signature", func(t *testing.T) {
		signed := blocktest.Sign(t, blocktest.New(1, 0).Build(), keys[0])
		signed = signed.WithSignature(signed.Signature()[:64])
		assert.True(t, block.IsMalformedSignature(signed.VerifySignature(c)))
	})

	t.Run("content changed after signing", func(t *testing.T) {
		signed := blocktest.Sign(t, blocktest.New(1, 0).Build(), keys[0])
		other := blocktest.Sign(t, blocktest.New(1, 0).SetTimestampMs(1).Build(), keys[0])
		tampered := other.WithSignature(signed.Signature())
		assert.True(t, block.IsSignatureVerification(tampered.VerifySignature(c)))
	})

	t.Run("signature bound to scope", func(t *testing.T) {
		blk := blocktest.New(1, 0).Build()
		inner, err := block.InnerDigest(blk)
		require.NoError(t, err)
		encoded, err := block.EncodeBlock(blk)
		require.NoError(t, err)
		assert.Equal(t, thor.Blake2b(encoded), inner)

		// a signature over the bare inner digest carries no intent and must not verify
		sig, err := keys[0].SignHash(inner)
		require.NoError(t, err)
		signed := blocktest.Sign(t, blk, keys[0]).WithSignature(sig.Bytes())
		assert.True(t, block.IsSignatureVerification(signed.VerifySignature(c)))
	})
}

func TestVerifiedBlockDigest(t *testing.T) {
	c, keys := blocktest.Committee(t, 1, 4)
	genesis := block.GenesisBlocks(c)

	ancestors := make([]block.BlockRef, 0, len(genesis))
	for _, g := range genesis {
		ancestors = append(ancestors, g.Reference())
	}
	blk := blocktest.New(1, 3).
		SetEpoch(1).
		SetTimestampMs(1_700_000_000_000).
		SetAncestors(ancestors).
		SetTransactions([]block.Transaction{block.NewTransaction([]byte("tx1")), block.NewTransaction(nil)}).
		SetCommitVotes([]commit.Vote{{Index: 1, Digest: thor.Blake2b([]byte("c1"))}}).
		SetMisbehaviorReports([]block.MisbehaviorReport{{Target: 1, Proof: block.InvalidBlockProof{Ref: ancestors[1]}}}).
		Build()

	v := blocktest.SignAndVerify(t, blk, keys[3])

	assert.Equal(t, block.ComputeDigest(v.Serialized()), v.Digest())
	assert.Equal(t, v.Digest(), v.Reference().Digest)
	assert.Equal(t, block.NewSlot(1, 3), v.Reference().Slot())
	assert.Equal(t, ancestors, v.Ancestors())

	// duplication shares the same value
	v2 := v
	assert.Equal(t, v.Digest(), v2.Digest())
	assert.Equal(t, v.Serialized(), v2.Serialized())

	// re-encoding decoded bytes is byte identical
	decoded, err := block.DecodeSignedBlock(v.Serialized())
	require.NoError(t, err)
	assert.NoError(t, decoded.VerifySignature(c))
	again, err := decoded.Serialize()
	require.NoError(t, err)
	assert.Equal(t, v.Serialized(), again)

	v3 := block.NewVerifiedBlock(decoded, again)
	assert.True(t, v.Equal(v3))

	reports := v3.MisbehaviorReports()
	require.Len(t, reports, 1)
	assert.Equal(t, block.InvalidBlockProof{Ref: ancestors[1]}, reports[0].Proof)
	assert.True(t, v3.Transactions()[0].Equal(block.NewTransaction([]byte("tx1"))))
}

func TestFlipSignatureByte(t *testing.T) {
	c, keys := blocktest.Committee(t, 0, 4)
	v := blocktest.SignAndVerify(t, blocktest.New(3, 1).SetTimestampMs(42).Build(), keys[1])

	serialized := bytes.Clone(v.Serialized())
	// the signature is the trailing 65 bytes; flip a byte of R
	serialized[len(serialized)-cry.SignatureLength+31] ^= 0x01

	assert.NotEqual(t, v.Digest(), block.ComputeDigest(serialized))

	tampered, err := block.DecodeSignedBlock(serialized)
	require.NoError(t, err)
	err = tampered.VerifySignature(c)
	require.Error(t, err)
	assert.True(t, block.IsSignatureVerification(err) || block.IsMalformedSignature(err), "got %v", err)
}

func TestBlockRefOrdering(t *testing.T) {
	d1 := block.BlockDigest{1}
	d2 := block.BlockDigest{2}

	refs := []block.BlockRef{
		block.NewBlockRef(2, 0, d1),
		block.NewBlockRef(1, 1, d1),
		block.NewBlockRef(1, 0, d2),
		block.NewBlockRef(1, 0, d1),
		block.NewBlockRef(0, 3, block.MaxBlockDigest),
	}
	slices.SortFunc(refs, block.BlockRef.Compare)

	assert.Equal(t, []block.BlockRef{
		block.NewBlockRef(0, 3, block.MaxBlockDigest),
		block.NewBlockRef(1, 0, d1),
		block.NewBlockRef(1, 0, d2),
		block.NewBlockRef(1, 1, d1),
		block.NewBlockRef(2, 0, d1),
	}, refs)

	for _, r := range refs {
		assert.LessOrEqual(t, block.MinBlockRef.Compare(r), 0)
		assert.GreaterOrEqual(t, block.MaxBlockRef.Compare(r), 0)
	}
	assert.True(t, block.MinBlockRef.Less(block.MaxBlockRef))
	assert.Equal(t, 0, block.MaxBlockRef.Compare(block.NewBlockRef(thor.MaxRound, committee.MaxAuthorityIndex, block.MaxBlockDigest)))
}

func TestDisplay(t *testing.T) {
	digest := block.ComputeDigest([]byte("display"))
	ref := block.NewBlockRef(7, 2, digest)

	assert.Len(t, digest.String(), 4)
	assert.Equal(t, fmt.Sprintf("B7(C,%s)", digest.String()), ref.String())
	assert.Equal(t, fmt.Sprintf("B7(C,%s)", digest.GoString()), fmt.Sprintf("%#v", ref))
	assert.Equal(t, "C7", ref.Slot().String())
	assert.Equal(t, "[30]12", block.NewSlot(12, 30).String())

	// all zero bytes encode to "AAAA"
	assert.Equal(t, "AAAA", block.MinBlockDigest.String())
	assert.Equal(t, "////", block.MaxBlockDigest.String())
}

func TestDigestText(t *testing.T) {
	digest := block.ComputeDigest([]byte("text"))
	text, err := digest.MarshalText()
	require.NoError(t, err)

	var parsed block.BlockDigest
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, digest, parsed)
	assert.Equal(t, uint64(digest[0])<<56, digest.Hash64()&0xff00000000000000)

	_, err = block.ParseBlockDigest("0x1234")
	assert.Error(t, err)
}

func TestGenesisBlocks(t *testing.T) {
	c, _ := blocktest.Committee(t, 5, 4)

	genesis := block.GenesisBlocks(c)
	require.Len(t, genesis, 4)
	for i, g := range genesis {
		assert.Equal(t, block.Round(0), g.Round())
		assert.Equal(t, committee.AuthorityIndex(i), g.Author())
		assert.Equal(t, committee.Epoch(5), g.Epoch())
		assert.Zero(t, g.TimestampMs())
		assert.Empty(t, g.Ancestors())
		assert.Empty(t, g.Transactions())
		assert.Empty(t, g.CommitVotes())
		assert.Empty(t, g.MisbehaviorReports())
		assert.Empty(t, g.Signature())
	}

	again := block.GenesisBlocks(c)
	for i := range genesis {
		assert.Equal(t, genesis[i].Serialized(), again[i].Serialized())
		assert.Equal(t, genesis[i].Reference(), again[i].Reference())
	}

	// distinct authors yield distinct digests
	assert.NotEqual(t, genesis[0].Digest(), genesis[1].Digest())
}

func TestFourMemberRound(t *testing.T) {
	c, keys := blocktest.Committee(t, 0, 4)
	genesis := block.GenesisBlocks(c)

	var parents []block.BlockRef
	for _, g := range genesis {
		parents = append(parents, g.Reference())
	}

	var round1 []*block.VerifiedBlock
	for i, key := range keys {
		blk := blocktest.New(1, uint32(i)).SetTimestampMs(1000).SetAncestors(parents).Build()
		signed := blocktest.Sign(t, blk, key)
		data, err := signed.Serialize()
		require.NoError(t, err)

		received, err := block.DecodeSignedBlock(data)
		require.NoError(t, err)
		require.NoError(t, received.VerifySignature(c))
		round1 = append(round1, block.NewVerifiedBlock(received, data))
	}

	for i, v := range round1 {
		assert.Equal(t, block.NewSlot(1, committee.AuthorityIndex(i)), v.Slot())
		for _, a := range v.Ancestors() {
			assert.Less(t, a.Round, v.Round())
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	_, keys := blocktest.Committee(t, 0, 1)
	v := blocktest.SignAndVerify(t, blocktest.New(1, 0).Build(), keys[0])

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte{0x01, 0x02}},
		{"trailing byte", append(bytes.Clone(v.Serialized()), 0x00)},
		{"truncated", v.Serialized()[:len(v.Serialized())-1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := block.DecodeSignedBlock(tt.data)
			assert.True(t, block.IsSerialization(err), "got %v", err)
		})
	}
}

func TestUnknownVersion(t *testing.T) {
	// [version 2, []]
	_, err := block.DecodeBlock([]byte{0xc2, 0x02, 0xc0})
	assert.ErrorContains(t, err, "unsupported block version 2")
}

func TestAccessorsReturnCopies(t *testing.T) {
	ancestors := []block.BlockRef{block.NewBlockRef(0, 0, block.BlockDigest{9})}
	blk := blocktest.New(1, 0).SetAncestors(ancestors).Build()

	ancestors[0].Round = 99
	assert.Equal(t, block.Round(0), blk.Ancestors()[0].Round)

	got := blk.Ancestors()
	got[0].Round = 42
	assert.Equal(t, block.Round(0), blk.Ancestors()[0].Round)
}

func TestEncodeMisbehaviorProof(t *testing.T) {
	ref := block.NewBlockRef(1, 2, block.BlockDigest{7})
	byValue := blocktest.New(3, 0).SetMisbehaviorReports([]block.MisbehaviorReport{{Target: 2, Proof: block.InvalidBlockProof{Ref: ref}}}).Build()
	byPointer := blocktest.New(3, 0).SetMisbehaviorReports([]block.MisbehaviorReport{{Target: 2, Proof: &block.InvalidBlockProof{Ref: ref}}}).Build()

	want, err := block.EncodeBlock(byValue)
	require.NoError(t, err)
	got, err := block.EncodeBlock(byPointer)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	var nilProof *block.InvalidBlockProof
	broken := blocktest.New(3, 0).SetMisbehaviorReports([]block.MisbehaviorReport{{Target: 2, Proof: nilProof}}).Build()
	assert.NotPanics(t, func() {
		_, err = block.EncodeBlock(broken)
	})
	assert.ErrorContains(t, err, "nil proof")
}
