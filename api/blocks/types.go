// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blocks

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/commit"
	"github.com/vechain/dagbft/committee"
	"github.com/vechain/dagbft/thor"
)

type JSONBlockRef struct {
	Round  block.Round              `json:"round"`
	Author committee.AuthorityIndex `json:"author"`
	Digest block.BlockDigest        `json:"digest"`
}

type JSONCommitVote struct {
	Index  commit.Index `json:"index"`
	Digest thor.Bytes32 `json:"digest"`
}

type JSONMisbehaviorReport struct {
	Target committee.AuthorityIndex `json:"target"`
	Proof  string                   `json:"proof"`
}

type JSONBlock struct {
	JSONBlockRef
	Version            uint8                    `json:"version"`
	Epoch              committee.Epoch          `json:"epoch"`
	TimestampMs        block.TimestampMs        `json:"timestampMs"`
	Ancestors          []*JSONBlockRef          `json:"ancestors"`
	Transactions       []hexutil.Bytes          `json:"transactions"`
	CommitVotes        []*JSONCommitVote        `json:"commitVotes"`
	MisbehaviorReports []*JSONMisbehaviorReport `json:"misbehaviorReports"`
	Signature          hexutil.Bytes            `json:"signature"`
	Size               int                      `json:"size"`
}

// JSONRawBlock carries a serialized SignedBlock.
type JSONRawBlock struct {
	Raw hexutil.Bytes `json:"raw"`
}

func convertRef(ref block.BlockRef) *JSONBlockRef {
	return &JSONBlockRef{
		Round:  ref.Round,
		Author: ref.Author,
		Digest: ref.Digest,
	}
}

func convertBlock(b *block.VerifiedBlock) *JSONBlock {
	ancestors := make([]*JSONBlockRef, 0, len(b.Ancestors()))
	for _, a := range b.Ancestors() {
		ancestors = append(ancestors, convertRef(a))
	}
	txs := make([]hexutil.Bytes, 0, len(b.Transactions()))
	for _, tx := range b.Transactions() {
		txs = append(txs, tx.Data())
	}
	votes := make([]*JSONCommitVote, 0, len(b.CommitVotes()))
	for _, v := range b.CommitVotes() {
		votes = append(votes, &JSONCommitVote{Index: v.Index, Digest: v.Digest})
	}
	reports := make([]*JSONMisbehaviorReport, 0, len(b.MisbehaviorReports()))
	for _, r := range b.MisbehaviorReports() {
		reports = append(reports, &JSONMisbehaviorReport{Target: r.Target, Proof: r.Proof.String()})
	}

	return &JSONBlock{
		JSONBlockRef:       *convertRef(b.Reference()),
		Version:            b.Version(),
		Epoch:              b.Epoch(),
		TimestampMs:        b.TimestampMs(),
		Ancestors:          ancestors,
		Transactions:       txs,
		CommitVotes:        votes,
		MisbehaviorReports: reports,
		Signature:          b.Signature(),
		Size:               len(b.Serialized()),
	}
}

func convertBlocks(blocks []*block.VerifiedBlock) []*JSONBlock {
	out := make([]*JSONBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, convertBlock(b))
	}
	return out
}
