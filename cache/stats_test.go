// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsChanged(t *testing.T) {
	var s Stats

	snap, changed := s.Changed()
	assert.False(t, changed)
	assert.Equal(t, "n/a", snap.String())

	s.Hit()
	s.Miss()
	snap, changed = s.Changed()
	assert.True(t, changed)
	assert.Equal(t, Snapshot{Hit: 1, Miss: 1}, snap)
	assert.Equal(t, "0.500", snap.String())

	// same rate, more lookups
	s.Hit()
	s.Miss()
	_, changed = s.Changed()
	assert.False(t, changed)

	assert.Equal(t, int64(3), s.Hit())
	snap, changed = s.Changed()
	assert.True(t, changed)
	assert.Equal(t, int64(5), snap.Lookups())
}

func TestStatsConcurrent(t *testing.T) {
	var (
		s  Stats
		wg sync.WaitGroup
	)
	for range 8 {
		wg.Go(func() {
			for range 100 {
				s.Hit()
				s.Miss()
				s.Miss()
				s.Miss()
			}
		})
	}
	wg.Wait()
	assert.Equal(t, Snapshot{Hit: 800, Miss: 2400}, s.Snapshot())
	assert.Equal(t, 0.25, s.HitRate())
}
