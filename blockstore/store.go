// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blockstore

import (
	"encoding/binary"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"github.com/qianbin/directcache"

	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/cache"
	"github.com/vechain/dagbft/kv"
	"github.com/vechain/dagbft/log"
	"github.com/vechain/dagbft/lvldb"
)

const (
	blockBucket = kv.Bucket("b") // for serialized blocks
	propBucket  = kv.Bucket("p") // for properties such as last round

	defaultBlockCacheSize = 1024
	defaultRawCacheMB     = 32
	statsLogInterval      = 20 * time.Second
)

var (
	errNotFound = errors.New("not found")
	// ErrCorrupted is returned when stored bytes do not hash to the requested digest.
	ErrCorrupted = errors.New("corrupted block data")

	lastRoundKey = []byte("last-round")
	logger       = log.WithContext("pkg", "blockstore")
)

// Options options for opening a block store.
type Options struct {
	lvldb.Options
	BlockCacheSize int // decoded blocks kept in memory
	RawCacheMB     int // serialized blocks kept in memory, in MiB
}

// Store persists verified blocks keyed by reference.
//
// It's thread-safe.
type Store struct {
	db        kv.Store
	blocks    kv.Getter
	props     kv.GetPutter
	lastRound atomic.Uint32
	writeLock sync.Mutex

	caches struct {
		blocks *cache.LRU[block.BlockRef, *block.VerifiedBlock]
		raw    *directcache.Cache
		stats  cache.Stats
	}
	lastLogTime atomic.Int64
}

// Open opens or creates a persistent block store at path.
func Open(path string, opts Options) (*Store, error) {
	db, err := lvldb.New(path, opts.Options)
	if err != nil {
		return nil, err
	}
	s, err := newStore(db, opts)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewMem creates a block store in memory.
func NewMem() (*Store, error) {
	db, err := lvldb.NewMem()
	if err != nil {
		return nil, err
	}
	return newStore(db, Options{})
}

func newStore(db kv.Store, opts Options) (*Store, error) {
	if opts.BlockCacheSize <= 0 {
		opts.BlockCacheSize = defaultBlockCacheSize
	}
	if opts.RawCacheMB <= 0 {
		opts.RawCacheMB = defaultRawCacheMB
	}

	blocks, err := cache.NewLRU[block.BlockRef, *block.VerifiedBlock](opts.BlockCacheSize)
	if err != nil {
		return nil, err
	}

	s := &Store{
		db:     db,
		blocks: blockBucket.NewGetter(db),
		props: &struct {
			kv.Getter
			kv.Putter
		}{
			propBucket.NewGetter(db),
			propBucket.NewPutter(db),
		},
	}
	s.caches.blocks = blocks
	s.caches.raw = directcache.New(opts.RawCacheMB * 1024 * 1024)
	s.lastLogTime.Store(time.Now().UnixNano())

	data, err := s.props.Get(lastRoundKey)
	if err != nil {
		if !s.props.IsNotFound(err) {
			return nil, errors.Wrap(err, "load last round")
		}
	} else {
		if len(data) != 4 {
			return nil, errors.Wrap(ErrCorrupted, "last round")
		}
		s.lastRound.Store(binary.BigEndian.Uint32(data))
	}
	return s, nil
}

// Close closes the underlying db.
func (s *Store) Close() error {
	return s.db.Close()
}

// LastRound returns the highest round ever written, or 0 for an empty store.
func (s *Store) LastRound() block.Round {
	return s.lastRound.Load()
}

// IsNotFound returns whether the error indicates a missing block.
func (s *Store) IsNotFound(err error) bool {
	return errors.Is(err, errNotFound) || s.db.IsNotFound(errors.Cause(err))
}

// Write stores blocks in one batch. Blocks already present are skipped.
func (s *Store) Write(blocks ...*block.VerifiedBlock) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	var (
		batch     = s.db.NewBatch()
		putter    = blockBucket.NewPutter(batch)
		lastRound = s.lastRound.Load()
		written   = make([]*block.VerifiedBlock, 0, len(blocks))
	)
	for _, b := range blocks {
		ref := b.Reference()
		key := makeRefKey(ref)
		has, err := s.blocks.Has(key[:])
		if err != nil {
			return err
		}
		if has {
			metricBlockStoreCount().AddWithLabel(1, map[string]string{"type": "write", "result": "dup"})
			continue
		}
		if err := putter.Put(key[:], snappy.Encode(nil, b.Serialized())); err != nil {
			return err
		}
		if ref.Round > lastRound {
			lastRound = ref.Round
		}
		written = append(written, b)
	}
	if len(written) == 0 {
		return nil
	}
	if lastRound > s.lastRound.Load() {
		if err := propBucket.NewPutter(batch).Put(lastRoundKey, roundKey(lastRound)); err != nil {
			return err
		}
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write blocks")
	}

	s.lastRound.Store(lastRound)
	for _, b := range written {
		s.caches.blocks.Add(b.Reference(), b)
	}
	metricBlockStoreCount().AddWithLabel(int64(len(written)), map[string]string{"type": "write", "result": "ok"})
	metricLastRound().Set(int64(lastRound))
	return nil
}

// Has returns whether the referenced block is stored.
func (s *Store) Has(ref block.BlockRef) (bool, error) {
	if s.caches.blocks.Contains(ref) {
		return true, nil
	}
	key := makeRefKey(ref)
	return s.blocks.Has(key[:])
}

// Get loads the referenced block.
func (s *Store) Get(ref block.BlockRef) (*block.VerifiedBlock, error) {
	defer s.logStats()

	if b, ok := s.caches.blocks.Get(ref); ok {
		s.caches.stats.Hit()
		metricBlockStoreCount().AddWithLabel(1, map[string]string{"type": "read", "result": "cache"})
		return b, nil
	}
	s.caches.stats.Miss()

	key := makeRefKey(ref)
	var raw []byte
	if !s.caches.raw.AdvGet(key[:], func(val []byte) {
		raw = slices.Clone(val)
	}, false) {
		data, err := s.blocks.Get(key[:])
		if err != nil {
			if s.blocks.IsNotFound(err) {
				return nil, errNotFound
			}
			return nil, err
		}
		if raw, err = snappy.Decode(nil, data); err != nil {
			return nil, errors.Wrapf(ErrCorrupted, "%v: %v", ref, err)
		}
		s.caches.raw.Set(key[:], raw)
	}

	b, err := decode(ref, raw)
	if err != nil {
		return nil, err
	}
	s.caches.blocks.Add(ref, b)
	metricBlockStoreCount().AddWithLabel(1, map[string]string{"type": "read", "result": "db"})
	return b, nil
}

// Slot loads all blocks proposed in the slot. More than one means the author equivocated.
func (s *Store) Slot(slot block.Slot) ([]*block.VerifiedBlock, error) {
	return s.scan(slotRange(slot))
}

// Range loads blocks with from <= ref < to, in BlockRef order.
func (s *Store) Range(from, to block.BlockRef) ([]*block.VerifiedBlock, error) {
	if from.Compare(to) >= 0 {
		return nil, nil
	}
	start, limit := makeRefKey(from), makeRefKey(to)
	return s.scan(kv.Range{Start: start[:], Limit: limit[:]})
}

func (s *Store) scan(rng kv.Range) ([]*block.VerifiedBlock, error) {
	it := blockBucket.NewIterator(s.db, rng)
	defer it.Release()

	var blocks []*block.VerifiedBlock
	for it.Next() {
		ref, ok := parseRefKey(it.Key())
		if !ok {
			return nil, errors.Wrapf(ErrCorrupted, "key %x", it.Key())
		}
		if b, ok := s.caches.blocks.Get(ref); ok {
			blocks = append(blocks, b)
			continue
		}
		raw, err := snappy.Decode(nil, it.Value())
		if err != nil {
			return nil, errors.Wrapf(ErrCorrupted, "%v: %v", ref, err)
		}
		b, err := decode(ref, raw)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return blocks, nil
}

// decode rebuilds a verified block from stored bytes. The signature was
// checked before the block was written, only identity is re-checked.
func decode(ref block.BlockRef, raw []byte) (*block.VerifiedBlock, error) {
	signed, err := block.DecodeSignedBlock(raw)
	if err != nil {
		return nil, errors.Wrapf(ErrCorrupted, "%v: %v", ref, err)
	}
	b := block.NewVerifiedBlock(signed, raw)
	if b.Reference() != ref {
		return nil, errors.Wrapf(ErrCorrupted, "%v: loaded %v", ref, b.Reference())
	}
	return b, nil
}

func (s *Store) logStats() {
	now := time.Now().UnixNano()
	last := s.lastLogTime.Swap(now)

	if now-last > int64(statsLogInterval) {
		if snap, changed := s.caches.stats.Changed(); changed {
			logger.Info("block cache stats", "lookups", snap.Lookups(), "hitrate", snap.String())
		}
	} else {
		s.lastLogTime.CompareAndSwap(now, last)
	}
}
