// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"hash"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// DigestLength is the size of every hash and digest in the protocol.
const DigestLength = blake2b.Size256

// NewBlake2b returns a blake2b-256 hasher.
func NewBlake2b() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

// Blake2b hashes the concatenation of data.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	return Blake2bFn(func(w io.Writer) {
		for _, b := range data {
			w.Write(b)
		}
	})
}

// Blake2bFn hashes whatever fn writes to w.
func Blake2bFn(fn func(w io.Writer)) Bytes32 {
	h, _ := Blake2bFnErr(func(w io.Writer) error {
		fn(w)
		return nil
	})
	return h
}

// Blake2bFnErr hashes the output of an encoder that may fail, such as rlp.Encode.
func Blake2bFnErr(fn func(w io.Writer) error) (Bytes32, error) {
	st := hasherPool.Get().(*hasher)
	defer hasherPool.Put(st)

	st.Reset()
	if err := fn(st); err != nil {
		return Bytes32{}, err
	}
	st.Sum(st.out[:0])
	return st.out, nil
}

type hasher struct {
	hash.Hash
	out Bytes32
}

var hasherPool = sync.Pool{
	New: func() any {
		return &hasher{Hash: NewBlake2b()}
	},
}
