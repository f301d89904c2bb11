// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/vechain/dagbft/thor"
)

// ErrInvalidSignature is returned when a well formed signature does not belong to the expected key.
var ErrInvalidSignature = errors.New("invalid signature")

// Sign signs the message by its blake2b-256 hash.
func (kp *KeyPair) Sign(message []byte) (Signature, error) {
	return kp.SignHash(thor.Blake2b(message))
}

// SignHash signs a 32 byte hash.
func (kp *KeyPair) SignHash(hash thor.Bytes32) (Signature, error) {
	var sig Signature
	raw, err := crypto.Sign(hash[:], kp.private)
	if err != nil {
		return sig, err
	}
	copy(sig[:], raw)
	return sig, nil
}

// Recover returns the public key that produced sig over hash.
func Recover(hash thor.Bytes32, sig Signature) (PublicKey, error) {
	pub, err := crypto.SigToPub(hash[:], sig[:])
	if err != nil {
		return PublicKey{}, err
	}
	return NewPublicKey(pub), nil
}

// Verify checks that sig over the blake2b-256 hash of message was produced by pub.
func Verify(pub PublicKey, message []byte, sig Signature) error {
	return VerifyHash(pub, thor.Blake2b(message), sig)
}

// VerifyHash checks that sig over hash was produced by pub.
func VerifyHash(pub PublicKey, hash thor.Bytes32, sig Signature) error {
	recovered, err := Recover(hash, sig)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if recovered != pub {
		return ErrInvalidSignature
	}
	return nil
}
