// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"bytes"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
)

// Transaction is an opaque, immutable payload carried by a block.
type Transaction struct {
	data []byte
}

// NewTransaction copies data into a transaction.
func NewTransaction(data []byte) Transaction {
	return Transaction{data: bytes.Clone(data)}
}

// Data returns a copy of the payload.
func (t Transaction) Data() []byte {
	return bytes.Clone(t.data)
}

// Len returns the payload size.
func (t Transaction) Len() int {
	return len(t.data)
}

// Equal compares payloads byte-wise.
func (t Transaction) Equal(other Transaction) bool {
	return bytes.Equal(t.data, other.data)
}

// Compare orders payloads byte-wise.
func (t Transaction) Compare(other Transaction) int {
	return bytes.Compare(t.data, other.data)
}

// EncodeRLP implements rlp.Encoder.
func (t Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, t.data)
}

// DecodeRLP implements rlp.Decoder.
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	data, err := s.Bytes()
	if err != nil {
		return err
	}
	t.data = data
	return nil
}

// TotalSize sums payload sizes.
func TotalSize(txs []Transaction) (n uint64) {
	for _, tx := range txs {
		n += uint64(len(tx.data))
	}
	return
}
