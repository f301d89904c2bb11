// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/dagbft/commit"
	"github.com/vechain/dagbft/committee"
)

// block versions on the wire.
const (
	VersionV1 uint8 = 1
)

// Block is the content an authority proposes at a slot. Implementations are
// immutable; the set of versions is closed.
type Block interface {
	Version() uint8
	Epoch() committee.Epoch
	Round() Round
	Author() committee.AuthorityIndex
	Slot() Slot
	TimestampMs() TimestampMs
	Ancestors() []BlockRef
	Transactions() []Transaction
	CommitVotes() []commit.Vote
	MisbehaviorReports() []MisbehaviorReport

	encodeBody(w io.Writer) error
}

// BlockV1 is the first block version.
// It's immutable.
type BlockV1 struct {
	body bodyV1
}

type bodyV1 struct {
	Epoch              committee.Epoch
	Round              Round
	Author             committee.AuthorityIndex
	TimestampMs        TimestampMs
	Ancestors          []BlockRef
	Transactions       []Transaction
	CommitVotes        []commit.Vote
	MisbehaviorReports []MisbehaviorReport
}

// NewBlockV1 creates a V1 block. Slices are copied.
func NewBlockV1(
	epoch committee.Epoch,
	round Round,
	author committee.AuthorityIndex,
	timestampMs TimestampMs,
	ancestors []BlockRef,
	transactions []Transaction,
	commitVotes []commit.Vote,
	misbehaviorReports []MisbehaviorReport,
) *BlockV1 {
	return &BlockV1{bodyV1{
		Epoch:              epoch,
		Round:              round,
		Author:             author,
		TimestampMs:        timestampMs,
		Ancestors:          slices.Clone(ancestors),
		Transactions:       slices.Clone(transactions),
		CommitVotes:        slices.Clone(commitVotes),
		MisbehaviorReports: slices.Clone(misbehaviorReports),
	}}
}

// newGenesisBlockV1 returns the round 0 block of author.
func newGenesisBlockV1(epoch committee.Epoch, author committee.AuthorityIndex) *BlockV1 {
	return NewBlockV1(epoch, 0, author, 0, nil, nil, nil, nil)
}

func (b *BlockV1) Version() uint8                   { return VersionV1 }
func (b *BlockV1) Epoch() committee.Epoch           { return b.body.Epoch }
func (b *BlockV1) Round() Round                     { return b.body.Round }
func (b *BlockV1) Author() committee.AuthorityIndex { return b.body.Author }
func (b *BlockV1) TimestampMs() TimestampMs         { return b.body.TimestampMs }

// Slot returns (round, author).
func (b *BlockV1) Slot() Slot {
	return Slot{Round: b.body.Round, Authority: b.body.Author}
}

// Ancestors returns a copy of the referenced ancestors.
func (b *BlockV1) Ancestors() []BlockRef {
	return slices.Clone(b.body.Ancestors)
}

// Transactions returns a copy of the transactions.
func (b *BlockV1) Transactions() []Transaction {
	return slices.Clone(b.body.Transactions)
}

// CommitVotes returns a copy of the commit votes.
func (b *BlockV1) CommitVotes() []commit.Vote {
	return slices.Clone(b.body.CommitVotes)
}

// MisbehaviorReports returns a copy of the misbehavior reports.
func (b *BlockV1) MisbehaviorReports() []MisbehaviorReport {
	return slices.Clone(b.body.MisbehaviorReports)
}

func (b *BlockV1) encodeBody(w io.Writer) error {
	return rlp.Encode(w, &b.body)
}

func (b *BlockV1) String() string {
	return fmt.Sprintf("BlockV1(%v, epoch %d, %dms, %d ancestors, %d txs)",
		b.Slot(), b.body.Epoch, b.body.TimestampMs, len(b.body.Ancestors), len(b.body.Transactions))
}

// EncodeBlock returns the canonical encoding of b: [version, body].
func EncodeBlock(b Block) ([]byte, error) {
	return rlp.EncodeToBytes(&blockCodec{b})
}

// DecodeBlock decodes a block produced by EncodeBlock.
func DecodeBlock(data []byte) (Block, error) {
	var c blockCodec
	if err := rlp.DecodeBytes(data, &c); err != nil {
		return nil, err
	}
	return c.Block, nil
}

// blockCodec carries the version tag around a block body.
type blockCodec struct {
	Block Block
}

// EncodeRLP implements rlp.Encoder.
func (c *blockCodec) EncodeRLP(w io.Writer) error {
	if c.Block == nil {
		return fmt.Errorf("rlp: nil block")
	}
	var body bytes.Buffer
	if err := c.Block.encodeBody(&body); err != nil {
		return err
	}
	return rlp.Encode(w, []any{c.Block.Version(), rlp.RawValue(body.Bytes())})
}

// DecodeRLP implements rlp.Decoder.
func (c *blockCodec) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	version, err := s.Uint64()
	if err != nil {
		return err
	}
	switch version {
	case uint64(VersionV1):
		var b BlockV1
		if err := s.Decode(&b.body); err != nil {
			return err
		}
		c.Block = &b
	default:
		return fmt.Errorf("rlp: unsupported block version %d", version)
	}
	return s.ListEnd()
}
