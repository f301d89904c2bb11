// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/dagbft/committee"
)

// proof kinds on the wire.
const (
	proofKindInvalidBlock uint8 = 0
)

// MisbehaviorProof is evidence of an authority's misbehavior.
// The set of implementations is closed.
type MisbehaviorProof interface {
	fmt.Stringer
	kind() uint8
}

// InvalidBlockProof points at a block that failed verification.
type InvalidBlockProof struct {
	Ref BlockRef
}

func (InvalidBlockProof) kind() uint8 { return proofKindInvalidBlock }

func (p InvalidBlockProof) String() string {
	return fmt.Sprintf("InvalidBlock(%v)", p.Ref)
}

// MisbehaviorReport accuses Target, backed by Proof.
type MisbehaviorReport struct {
	Target committee.AuthorityIndex
	Proof  MisbehaviorProof
}

func (r MisbehaviorReport) String() string {
	return fmt.Sprintf("Report(%v: %v)", r.Target, r.Proof)
}

type proofEnvelope struct {
	Kind    uint8
	Payload rlp.RawValue
}

// EncodeRLP implements rlp.Encoder.
func (r MisbehaviorReport) EncodeRLP(w io.Writer) error {
	if r.Proof == nil {
		return fmt.Errorf("misbehavior report for %v has no proof", r.Target)
	}
	var payload []byte
	var err error
	switch p := r.Proof.(type) {
	case InvalidBlockProof:
		payload, err = rlp.EncodeToBytes(&p.Ref)
	case *InvalidBlockProof:
		if p == nil {
			return fmt.Errorf("misbehavior report for %v has nil proof", r.Target)
		}
		payload, err = rlp.EncodeToBytes(&p.Ref)
	default:
		return fmt.Errorf("unsupported misbehavior proof %T", r.Proof)
	}
	if err != nil {
		return err
	}
	return rlp.Encode(w, []any{r.Target, proofEnvelope{r.Proof.kind(), payload}})
}

// DecodeRLP implements rlp.Decoder.
func (r *MisbehaviorReport) DecodeRLP(s *rlp.Stream) error {
	var payload struct {
		Target committee.AuthorityIndex
		Proof  proofEnvelope
	}
	if err := s.Decode(&payload); err != nil {
		return err
	}

	switch payload.Proof.Kind {
	case proofKindInvalidBlock:
		var ref BlockRef
		if err := rlp.DecodeBytes(payload.Proof.Payload, &ref); err != nil {
			return err
		}
		*r = MisbehaviorReport{Target: payload.Target, Proof: InvalidBlockProof{Ref: ref}}
		return nil
	default:
		return fmt.Errorf("rlp: unknown misbehavior proof kind %d", payload.Proof.Kind)
	}
}
