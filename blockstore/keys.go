// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blockstore

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/vechain/dagbft/block"
	"github.com/vechain/dagbft/committee"
	"github.com/vechain/dagbft/kv"
	"github.com/vechain/dagbft/thor"
)

const (
	slotKeyLen = 4 + 4
	refKeyLen  = slotKeyLen + thor.DigestLength
)

// the key of a stored block.
// it consists of: ( round | author | digest ), all big-endian,
// so that the key order equals BlockRef order.
type refKey [refKeyLen]byte

func makeRefKey(ref block.BlockRef) (k refKey) {
	binary.BigEndian.PutUint32(k[:], ref.Round)
	binary.BigEndian.PutUint32(k[4:], uint32(ref.Author))
	copy(k[slotKeyLen:], ref.Digest[:])
	return
}

func parseRefKey(b []byte) (block.BlockRef, bool) {
	if len(b) != refKeyLen {
		return block.BlockRef{}, false
	}
	var digest block.BlockDigest
	copy(digest[:], b[slotKeyLen:])
	return block.NewBlockRef(
		binary.BigEndian.Uint32(b),
		committee.AuthorityIndex(binary.BigEndian.Uint32(b[4:])),
		digest,
	), true
}

func slotRange(slot block.Slot) kv.Range {
	var prefix [slotKeyLen]byte
	binary.BigEndian.PutUint32(prefix[:], slot.Round)
	binary.BigEndian.PutUint32(prefix[4:], uint32(slot.Authority))
	rng := util.BytesPrefix(prefix[:])
	return kv.Range{Start: rng.Start, Limit: rng.Limit}
}

func roundKey(round block.Round) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], round)
	return b[:]
}
