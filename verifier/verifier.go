// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package verifier checks received blocks before they enter the DAG.
package verifier

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/cache"
	"github.com/vechain/dagbft/committee"
	"github.com/vechain/dagbft/log"
	"github.com/vechain/dagbft/thor"
)

var logger = log.WithContext("pkg", "verifier")

const defaultCacheSize = 4096

// Verifier checks signatures and block structure against one committee.
// It's safe for concurrent use.
type Verifier struct {
	committee block.Committee
	config    thor.Config
	clock     func() time.Time

	// bucketed by Hash64, values hold the full digest
	verified  *cache.LRU[uint64, block.BlockDigest]
	cacheSize int
	stats     cache.Stats
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithClock overrides the clock used for the timestamp drift check.
func WithClock(clock func() time.Time) Option {
	return func(v *Verifier) { v.clock = clock }
}

// WithConfig sets protocol limits. Zero fields take defaults.
func WithConfig(cfg thor.Config) Option {
	return func(v *Verifier) { v.config = cfg.Merge() }
}

// WithCacheSize sets how many verified digests are remembered.
func WithCacheSize(size int) Option {
	return func(v *Verifier) { v.cacheSize = size }
}

// New creates a verifier for the given committee.
func New(c block.Committee, opts ...Option) (*Verifier, error) {
	v := &Verifier{
		committee: c,
		config:    thor.DefaultConfig(),
		clock:     time.Now,
		cacheSize: defaultCacheSize,
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.config.Validate(); err != nil {
		return nil, err
	}
	verified, err := cache.NewLRU[uint64, block.BlockDigest](v.cacheSize)
	if err != nil {
		return nil, err
	}
	v.verified = verified
	return v, nil
}

// Committee returns the committee blocks are checked against.
func (v *Verifier) Committee() block.Committee {
	return v.committee
}

// VerifySigned checks the author's signature and then the block structure.
func (v *Verifier) VerifySigned(sb *block.SignedBlock) error {
	if err := sb.VerifySignature(v.committee); err != nil {
		return err
	}
	return v.verifyStructure(sb.Block())
}

func (v *Verifier) verifyStructure(b block.Block) error {
	ancestors := b.Ancestors()
	txs := b.Transactions()
	reports := b.MisbehaviorReports()
	now := uint64(v.clock().UnixMilli())

	switch {
	case b.Epoch() != v.committee.Epoch():
		return structureErrorf("epoch %d, committee epoch %d", b.Epoch(), v.committee.Epoch())
	case b.Round() == 0:
		return structureErrorf("genesis round is never received")
	case len(ancestors) > v.committee.Size():
		return structureErrorf("%d ancestors exceed committee size %d", len(ancestors), v.committee.Size())
	case uint64(len(txs)) > uint64(v.config.MaxTransactionsPerBlock):
		return structureErrorf("%d transactions exceed limit %d", len(txs), v.config.MaxTransactionsPerBlock)
	case block.TotalSize(txs) > v.config.MaxTransactionBytes:
		return structureErrorf("%d transaction bytes exceed limit %d", block.TotalSize(txs), v.config.MaxTransactionBytes)
	case uint64(len(reports)) > uint64(v.config.MaxMisbehaviorReports):
		return structureErrorf("%d misbehavior reports exceed limit %d", len(reports), v.config.MaxMisbehaviorReports)
	case b.TimestampMs() > now+v.config.MaxTimestampDriftMs:
		return structureErrorf("timestamp %d is %dms ahead of local time", b.TimestampMs(), b.TimestampMs()-now)
	}

	seen := make(map[committee.AuthorityIndex]struct{}, len(ancestors))
	for _, a := range ancestors {
		switch {
		case !v.committee.IsValidIndex(a.Author):
			return structureErrorf("ancestor %v has invalid author", a)
		case a.Round >= b.Round():
			return structureErrorf("ancestor %v is not below round %d", a, b.Round())
		}
		if _, dup := seen[a.Author]; dup {
			return structureErrorf("more than one ancestor from authority %v", a.Author)
		}
		seen[a.Author] = struct{}{}
	}

	for _, r := range reports {
		if !v.committee.IsValidIndex(r.Target) {
			return structureErrorf("misbehavior report targets invalid authority %d", uint32(r.Target))
		}
		if r.Proof == nil {
			return structureErrorf("misbehavior report against %v carries no proof", r.Target)
		}
	}
	return nil
}

// Verify decodes serialized signed block bytes, verifies them and returns the
// verified block. Bytes already verified by this verifier skip the signature check.
func (v *Verifier) Verify(serialized []byte) (*block.VerifiedBlock, error) {
	start := time.Now()
	digest := block.ComputeDigest(serialized)

	sb, err := block.DecodeSignedBlock(serialized)
	if err != nil {
		metricBlocksCount().AddWithLabel(1, map[string]string{"result": "malformed"})
		return nil, err
	}

	if v.isVerified(digest) {
		v.stats.Hit()
		metricBlocksCount().AddWithLabel(1, map[string]string{"result": "cached"})
		return block.NewVerifiedBlock(sb, serialized), nil
	}
	v.stats.Miss()

	if err := v.VerifySigned(sb); err != nil {
		metricBlocksCount().AddWithLabel(1, map[string]string{"result": "invalid"})
		logger.Debug("rejected block", "slot", sb.Block().Slot(), "err", err)
		return nil, err
	}

	vb := block.NewVerifiedBlock(sb, serialized)
	v.verified.Add(digest.Hash64(), digest)
	metricBlocksCount().AddWithLabel(1, map[string]string{"result": "ok"})
	metricDuration().Observe(time.Since(start).Milliseconds())

	if snap, changed := v.stats.Changed(); changed {
		logger.Trace("verifier cache stats", "hit", snap.Hit, "miss", snap.Miss, "rate", snap.String())
	}
	return vb, nil
}

// isVerified reports whether digest passed verification before. Digests
// sharing a Hash64 bucket evict each other.
func (v *Verifier) isVerified(digest block.BlockDigest) bool {
	got, ok := v.verified.Get(digest.Hash64())
	return ok && got == digest
}

// VerifyBatch verifies blocks in parallel and returns them in input order.
// It fails with the first error encountered.
func (v *Verifier) VerifyBatch(ctx context.Context, batch [][]byte) ([]*block.VerifiedBlock, error) {
	results := make([]*block.VerifiedBlock, len(batch))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, data := range batch {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			vb, err := v.Verify(data)
			if err != nil {
				return fmt.Errorf("block %d: %w", i, err)
			}
			results[i] = vb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CheckAncestorTimestamps checks that b is not older than any of the given
// ancestors, all of which must be referenced by b.
func CheckAncestorTimestamps(b block.Block, ancestors []*block.VerifiedBlock) error {
	refs := make(map[block.BlockRef]struct{}, len(ancestors))
	for _, r := range b.Ancestors() {
		refs[r] = struct{}{}
	}
	for _, a := range ancestors {
		if _, ok := refs[a.Reference()]; !ok {
			return structureErrorf("%v is not an ancestor of %v", a.Reference(), b.Slot())
		}
		if a.TimestampMs() > b.TimestampMs() {
			return structureErrorf("timestamp %d is older than ancestor %v at %d", b.TimestampMs(), a.Reference(), a.TimestampMs())
		}
	}
	return nil
}
