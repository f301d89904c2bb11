// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package committee

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/vechain/dagbft/cry"
)

// Committee is the read-only authority set of one epoch.
type Committee struct {
	epoch       Epoch
	authorities []Authority
	totalStake  Stake
}

// New builds a committee. Every authority must carry stake and a protocol key.
func New(epoch Epoch, authorities []Authority) (*Committee, error) {
	if len(authorities) == 0 {
		return nil, errors.New("empty committee")
	}
	if uint64(len(authorities)) > uint64(MaxAuthorityIndex) {
		return nil, errors.New("too many authorities")
	}

	var total Stake
	seen := make(map[cry.PublicKey]int, len(authorities))
	for i, a := range authorities {
		if a.Stake == 0 {
			return nil, fmt.Errorf("authority %v: zero stake", AuthorityIndex(i))
		}
		if a.ProtocolKey.IsZero() {
			return nil, fmt.Errorf("authority %v: missing protocol key", AuthorityIndex(i))
		}
		if prev, ok := seen[a.ProtocolKey]; ok {
			return nil, fmt.Errorf("authority %v: protocol key already used by %v", AuthorityIndex(i), AuthorityIndex(prev))
		}
		seen[a.ProtocolKey] = i
		total += a.Stake
	}

	return &Committee{
		epoch:       epoch,
		authorities: append([]Authority(nil), authorities...),
		totalStake:  total,
	}, nil
}

// Epoch returns the epoch this committee serves.
func (c *Committee) Epoch() Epoch { return c.epoch }

// Size returns the number of authorities.
func (c *Committee) Size() int { return len(c.authorities) }

// TotalStake returns the sum of all stakes.
func (c *Committee) TotalStake() Stake { return c.totalStake }

// IsValidIndex reports whether i addresses a member.
func (c *Committee) IsValidIndex(i AuthorityIndex) bool {
	return uint64(i) < uint64(len(c.authorities))
}

// Authority returns the member at i. It panics on an invalid index.
func (c *Committee) Authority(i AuthorityIndex) Authority {
	return c.authorities[i]
}

// PublicKey returns the protocol key of member i. It panics on an invalid index.
func (c *Committee) PublicKey(i AuthorityIndex) cry.PublicKey {
	return c.authorities[i].ProtocolKey
}

// Stake returns the stake of member i, or 0 for an invalid index.
func (c *Committee) Stake(i AuthorityIndex) Stake {
	if !c.IsValidIndex(i) {
		return 0
	}
	return c.authorities[i].Stake
}

// IndexOf finds the member holding the given protocol key.
func (c *Committee) IndexOf(key cry.PublicKey) (AuthorityIndex, bool) {
	for i, a := range c.authorities {
		if a.ProtocolKey == key {
			return AuthorityIndex(i), true
		}
	}
	return 0, false
}

// Authorities iterates members in index order.
func (c *Committee) Authorities() func(yield func(AuthorityIndex, Authority) bool) {
	return func(yield func(AuthorityIndex, Authority) bool) {
		for i, a := range c.authorities {
			if !yield(AuthorityIndex(i), a) {
				return
			}
		}
	}
}

// NewLocal generates a committee of n equally staked authorities with fresh keys,
// for local networks and tests. Keys are returned in index order.
func NewLocal(epoch Epoch, n int) (*Committee, []*cry.KeyPair, error) {
	authorities := make([]Authority, 0, n)
	keys := make([]*cry.KeyPair, 0, n)
	for i := range n {
		kp, err := cry.GenerateKeyPair()
		if err != nil {
			return nil, nil, errors.Wrap(err, "generate key")
		}
		keys = append(keys, kp)
		authorities = append(authorities, Authority{
			Stake:       1,
			Address:     fmt.Sprintf("127.0.0.1:%d", 11000+i),
			Hostname:    fmt.Sprintf("test-%d", i),
			ProtocolKey: kp.Public(),
		})
	}
	c, err := New(epoch, authorities)
	if err != nil {
		return nil, nil, err
	}
	return c, keys, nil
}
