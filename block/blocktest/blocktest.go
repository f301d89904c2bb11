// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package blocktest builds blocks for tests. It must only be imported from _test.go files.
package blocktest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/commit"
	"github.com/vechain/dagbft/committee"
	"github.com/vechain/dagbft/cry"
)

// TestBlock is a fluent builder of V1 blocks. Unset fields take zero values.
type TestBlock struct {
	epoch        committee.Epoch
	round        block.Round
	author       committee.AuthorityIndex
	timestampMs  block.TimestampMs
	ancestors    []block.BlockRef
	transactions []block.Transaction
	commitVotes  []commit.Vote
	reports      []block.MisbehaviorReport
}

// New starts a builder at (round, author).
func New(round block.Round, author uint32) *TestBlock {
	return &TestBlock{round: round, author: committee.AuthorityIndex(author)}
}

func (b *TestBlock) SetEpoch(epoch committee.Epoch) *TestBlock {
	b.epoch = epoch
	return b
}

func (b *TestBlock) SetRound(round block.Round) *TestBlock {
	b.round = round
	return b
}

func (b *TestBlock) SetAuthor(author committee.AuthorityIndex) *TestBlock {
	b.author = author
	return b
}

func (b *TestBlock) SetTimestampMs(ts block.TimestampMs) *TestBlock {
	b.timestampMs = ts
	return b
}

func (b *TestBlock) SetAncestors(ancestors []block.BlockRef) *TestBlock {
	b.ancestors = ancestors
	return b
}

func (b *TestBlock) SetTransactions(txs []block.Transaction) *TestBlock {
	b.transactions = txs
	return b
}

func (b *TestBlock) SetCommitVotes(votes []commit.Vote) *TestBlock {
	b.commitVotes = votes
	return b
}

func (b *TestBlock) SetMisbehaviorReports(reports []block.MisbehaviorReport) *TestBlock {
	b.reports = reports
	return b
}

// Build returns the block.
func (b *TestBlock) Build() block.Block {
	return block.NewBlockV1(b.epoch, b.round, b.author, b.timestampMs, b.ancestors, b.transactions, b.commitVotes, b.reports)
}

// NewVerified wraps blk with an empty signature, skipping verification.
func NewVerified(t testing.TB, blk block.Block) *block.VerifiedBlock {
	signed := Sign(t, blk, nil)
	data, err := signed.Serialize()
	require.NoError(t, err)
	return block.NewVerifiedBlock(signed, data)
}

// Sign signs blk with key, or leaves it unsigned when key is nil.
func Sign(t testing.TB, blk block.Block, key *cry.KeyPair) *block.SignedBlock {
	if key == nil {
		sb, err := block.NewSignedBlock(blk, mustKey(t))
		require.NoError(t, err)
		return sb.WithSignature(nil)
	}
	sb, err := block.NewSignedBlock(blk, key)
	require.NoError(t, err)
	return sb
}

// SignAndVerify signs blk with key and promotes it to a VerifiedBlock.
func SignAndVerify(t testing.TB, blk block.Block, key *cry.KeyPair) *block.VerifiedBlock {
	signed := Sign(t, blk, key)
	data, err := signed.Serialize()
	require.NoError(t, err)
	return block.NewVerifiedBlock(signed, data)
}

// Committee returns a local committee of size n with its keys.
func Committee(t testing.TB, epoch committee.Epoch, n int) (*committee.Committee, []*cry.KeyPair) {
	c, keys, err := committee.NewLocal(epoch, n)
	require.NoError(t, err)
	return c, keys
}

func mustKey(t testing.TB) *cry.KeyPair {
	kp, err := cry.GenerateKeyPair()
	require.NoError(t, err)
	return kp
}
