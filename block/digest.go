// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/vechain/dagbft/thor"
)

// BlockDigest identifies a block. It is the blake2b-256 hash of the
// serialized signed block.
type BlockDigest thor.Bytes32

var (
	// MinBlockDigest is the smallest digest.
	MinBlockDigest = BlockDigest{}
	// MaxBlockDigest is the largest digest.
	MaxBlockDigest = BlockDigest(bytes.Repeat([]byte{0xff}, thor.DigestLength))
)

// ComputeDigest hashes serialized signed block bytes.
func ComputeDigest(serialized []byte) BlockDigest {
	return BlockDigest(thor.Blake2b(serialized))
}

// Bytes returns the digest as a slice.
func (d BlockDigest) Bytes() []byte {
	return d[:]
}

// Compare orders digests lexicographically.
func (d BlockDigest) Compare(other BlockDigest) int {
	return bytes.Compare(d[:], other[:])
}

// Hash64 returns the first 8 bytes, big-endian. It is meant for bucketing
// only, identity always compares the full digest.
func (d BlockDigest) Hash64() uint64 {
	return binary.BigEndian.Uint64(d[:thor.ShortDigestLength])
}

// String returns the first 4 characters of the standard base64 encoding.
func (d BlockDigest) String() string {
	return base64.StdEncoding.EncodeToString(d[:])[:4]
}

// GoString returns the full base64 encoding.
func (d BlockDigest) GoString() string {
	return base64.StdEncoding.EncodeToString(d[:])
}

// Hex returns the 0x prefixed hex encoding.
func (d BlockDigest) Hex() string {
	return thor.Bytes32(d).String()
}

// MarshalText implements encoding.TextMarshaler using hex.
func (d BlockDigest) MarshalText() ([]byte, error) {
	return []byte(d.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *BlockDigest) UnmarshalText(text []byte) error {
	parsed, err := ParseBlockDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseBlockDigest parses a hex digest, with or without 0x prefix.
func ParseBlockDigest(s string) (BlockDigest, error) {
	b, err := thor.ParseBytes32(s)
	if err != nil {
		return BlockDigest{}, fmt.Errorf("invalid block digest: %w", err)
	}
	return BlockDigest(b), nil
}
