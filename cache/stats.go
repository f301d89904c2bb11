// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"fmt"
	"sync/atomic"
)

// Stats counts cache hits and misses. The zero value is ready to use.
type Stats struct {
	hit, miss atomic.Int64
	permille  atomic.Int32
}

// Hit records a hit and returns the total.
func (s *Stats) Hit() int64 { return s.hit.Add(1) }

// Miss records a miss and returns the total.
func (s *Stats) Miss() int64 { return s.miss.Add(1) }

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	Hit, Miss int64
}

// Lookups returns hits plus misses.
func (s Snapshot) Lookups() int64 { return s.Hit + s.Miss }

// HitRate returns hits / lookups, or 0 before any lookup.
func (s Snapshot) HitRate() float64 {
	if s.Lookups() == 0 {
		return 0
	}
	return float64(s.Hit) / float64(s.Lookups())
}

// String formats the hit rate with three decimals, "n/a" before any lookup.
func (s Snapshot) String() string {
	if s.Lookups() == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", s.HitRate())
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{Hit: s.hit.Load(), Miss: s.miss.Load()}
}

// HitRate returns the current hit rate.
func (s *Stats) HitRate() float64 { return s.Snapshot().HitRate() }

// Changed returns the current counters and whether the hit rate moved by at
// least 0.1% since the previous call.
func (s *Stats) Changed() (Snapshot, bool) {
	snap := s.Snapshot()
	permille := int32(snap.HitRate() * 1000)
	return snap, s.permille.Swap(permille) != permille
}
