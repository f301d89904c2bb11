// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package intent provides domain separation for signed protocol artifacts.
// Every signature is computed over a three byte intent prefix followed by the
// digest of the artifact, so a signature made for one purpose can never be
// replayed as a signature for another.
package intent

import (
	"fmt"

	"github.com/vechain/dagbft/thor"
)

// Scope identifies the kind of artifact being signed.
type Scope uint8

const (
	ScopePersonalMessage   Scope = 3
	ScopeProofOfPossession Scope = 5
	ScopeConsensusBlock    Scope = 8
	ScopeCommitVote        Scope = 16
)

func (s Scope) String() string {
	switch s {
	case ScopePersonalMessage:
		return "PersonalMessage"
	case ScopeProofOfPossession:
		return "ProofOfPossession"
	case ScopeConsensusBlock:
		return "ConsensusBlock"
	case ScopeCommitVote:
		return "CommitVote"
	default:
		return fmt.Sprintf("Scope(%d)", uint8(s))
	}
}

// Version of the intent encoding.
type Version uint8

const V0 Version = 0

// AppID identifies the application the signature is bound to.
type AppID uint8

const AppConsensus AppID = 2

// Length is the encoded length of an Intent.
const Length = 3

// MessageLength is the encoded length of a Message.
const MessageLength = Length + thor.DigestLength

// Intent is the (scope, version, app) triple prefixed to signed digests.
type Intent struct {
	Scope   Scope
	Version Version
	App     AppID
}

// ConsensusApp returns the V0 consensus intent for the given scope.
func ConsensusApp(scope Scope) Intent {
	return Intent{Scope: scope, Version: V0, App: AppConsensus}
}

// Bytes returns the three byte encoding.
func (i Intent) Bytes() [Length]byte {
	return [Length]byte{byte(i.Scope), byte(i.Version), byte(i.App)}
}

func (i Intent) String() string {
	return fmt.Sprintf("%v/v%d/app%d", i.Scope, i.Version, i.App)
}

// Message is an intent bound to an artifact digest.
type Message struct {
	Intent Intent
	Digest thor.Bytes32
}

// NewMessage binds the intent to digest.
func NewMessage(i Intent, digest thor.Bytes32) Message {
	return Message{Intent: i, Digest: digest}
}

// Bytes returns intent bytes followed by the digest.
func (m Message) Bytes() []byte {
	prefix := m.Intent.Bytes()
	out := make([]byte, 0, MessageLength)
	out = append(out, prefix[:]...)
	return append(out, m.Digest[:]...)
}

// SigningHash is the hash that actually gets signed.
func (m Message) SigningHash() thor.Bytes32 {
	prefix := m.Intent.Bytes()
	return thor.Blake2b(prefix[:], m.Digest[:])
}
