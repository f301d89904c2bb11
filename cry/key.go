// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cry

import (
	"crypto/ecdsa"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// PublicKeyLength is the length of a compressed secp256k1 public key.
const PublicKeyLength = 33

// PublicKey is a compressed secp256k1 public key.
type PublicKey [PublicKeyLength]byte

// NewPublicKey compresses an ecdsa public key.
func NewPublicKey(pub *ecdsa.PublicKey) (pk PublicKey) {
	copy(pk[:], crypto.CompressPubkey(pub))
	return
}

// ParsePublicKey parses a compressed public key, checking that it is on the curve.
func ParsePublicKey(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeyLength {
		return pk, errors.New("invalid public key length")
	}
	if _, err := crypto.DecompressPubkey(b); err != nil {
		return pk, err
	}
	copy(pk[:], b)
	return pk, nil
}

// ParsePublicKeyHex parses a hex encoded compressed public key, with or without 0x prefix.
func ParsePublicKeyHex(s string) (PublicKey, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(s), "0x"))
	if err != nil {
		return PublicKey{}, err
	}
	return ParsePublicKey(b)
}

// String implements fmt.Stringer.
func (pk PublicKey) String() string {
	return "0x" + hex.EncodeToString(pk[:])
}

// Bytes returns the compressed form.
func (pk PublicKey) Bytes() []byte {
	return pk[:]
}

// IsZero reports whether the key is unset.
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// ECDSA decompresses the key.
func (pk PublicKey) ECDSA() (*ecdsa.PublicKey, error) {
	return crypto.DecompressPubkey(pk[:])
}

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKeyHex(string(text))
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// KeyPair is a protocol signing key.
type KeyPair struct {
	private *ecdsa.PrivateKey
	public  PublicKey
}

// GenerateKeyPair creates a random key pair.
func GenerateKeyPair() (*KeyPair, error) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return newKeyPair(priv), nil
}

// KeyPairFromBytes loads a 32 byte private key.
func KeyPairFromBytes(b []byte) (*KeyPair, error) {
	priv, err := crypto.ToECDSA(b)
	if err != nil {
		return nil, err
	}
	return newKeyPair(priv), nil
}

// KeyPairFromHex loads a hex encoded private key.
func KeyPairFromHex(s string) (*KeyPair, error) {
	priv, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, err
	}
	return newKeyPair(priv), nil
}

func newKeyPair(priv *ecdsa.PrivateKey) *KeyPair {
	return &KeyPair{
		private: priv,
		public:  NewPublicKey(&priv.PublicKey),
	}
}

// Public returns the compressed public key.
func (kp *KeyPair) Public() PublicKey {
	return kp.public
}

// Bytes returns the 32 byte private key.
func (kp *KeyPair) Bytes() []byte {
	return crypto.FromECDSA(kp.private)
}

// Hex returns the hex encoded private key without prefix.
func (kp *KeyPair) Hex() string {
	return hex.EncodeToString(kp.Bytes())
}
