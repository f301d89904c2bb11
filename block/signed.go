// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/dagbft/cry"
	"github.com/vechain/dagbft/intent"
	"github.com/vechain/dagbft/thor"
)

// SignedBlock is a block together with its author's signature, as it travels
// between authorities. The signature is not checked on construction.
type SignedBlock struct {
	block     Block
	signature []byte
}

// InnerDigest hashes the canonical encoding of b, excluding any signature.
func InnerDigest(b Block) (thor.Bytes32, error) {
	h, err := thor.Blake2bFnErr(func(w io.Writer) error {
		return rlp.Encode(w, &blockCodec{b})
	})
	if err != nil {
		return thor.Bytes32{}, &SerializationError{err}
	}
	return h, nil
}

// SigningMessage returns the intent message an author signs for b.
func SigningMessage(b Block) (intent.Message, error) {
	digest, err := InnerDigest(b)
	if err != nil {
		return intent.Message{}, err
	}
	return intent.NewMessage(intent.ConsensusApp(intent.ScopeConsensusBlock), digest), nil
}

// NewSignedBlock signs b with the author's key.
func NewSignedBlock(b Block, key *cry.KeyPair) (*SignedBlock, error) {
	msg, err := SigningMessage(b)
	if err != nil {
		return nil, err
	}
	sig, err := key.SignHash(msg.SigningHash())
	if err != nil {
		return nil, err
	}
	return &SignedBlock{block: b, signature: sig.Bytes()}, nil
}

// newGenesisSignedBlock wraps a genesis block, which carries no signature.
func newGenesisSignedBlock(b Block) *SignedBlock {
	return &SignedBlock{block: b}
}

// WithSignature returns a copy of sb carrying sig instead.
func (sb *SignedBlock) WithSignature(sig []byte) *SignedBlock {
	return &SignedBlock{block: sb.block, signature: bytes.Clone(sig)}
}

// Block returns the signed content.
func (sb *SignedBlock) Block() Block {
	return sb.block
}

// Signature returns a copy of the raw signature bytes.
func (sb *SignedBlock) Signature() []byte {
	return bytes.Clone(sb.signature)
}

// VerifySignature checks that the block was signed by its author's protocol key.
func (sb *SignedBlock) VerifySignature(c Committee) error {
	author := sb.block.Author()
	if !c.IsValidIndex(author) {
		return &InvalidAuthorityIndexError{Index: author, Max: c.Size() - 1}
	}

	sig, err := cry.ParseSignature(sb.signature)
	if err != nil {
		return &MalformedSignatureError{err}
	}

	msg, err := SigningMessage(sb.block)
	if err != nil {
		return err
	}
	if err := cry.VerifyHash(c.PublicKey(author), msg.SigningHash(), sig); err != nil {
		return &SignatureVerificationError{err}
	}
	return nil
}

// Serialize returns the canonical encoding [block, signature].
func (sb *SignedBlock) Serialize() ([]byte, error) {
	data, err := rlp.EncodeToBytes(sb)
	if err != nil {
		return nil, &SerializationError{err}
	}
	return data, nil
}

// DecodeSignedBlock decodes bytes produced by Serialize. Non-canonical input
// and trailing bytes are rejected.
func DecodeSignedBlock(data []byte) (*SignedBlock, error) {
	var sb SignedBlock
	if err := rlp.DecodeBytes(data, &sb); err != nil {
		return nil, &SerializationError{err}
	}
	return &sb, nil
}

// EncodeRLP implements rlp.Encoder.
func (sb *SignedBlock) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, []any{&blockCodec{sb.block}, sb.signature})
}

// DecodeRLP implements rlp.Decoder.
func (sb *SignedBlock) DecodeRLP(s *rlp.Stream) error {
	var payload struct {
		Block     blockCodec
		Signature []byte
	}
	if err := s.Decode(&payload); err != nil {
		return err
	}
	*sb = SignedBlock{block: payload.Block.Block, signature: payload.Signature}
	return nil
}

func (sb *SignedBlock) String() string {
	return fmt.Sprintf("SignedBlock(%v)", sb.block.Slot())
}
