// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLRUInvalidSize(t *testing.T) {
	_, err := NewLRU[string, int](0)
	assert.Error(t, err)
}

func TestLRUEviction(t *testing.T) {
	c, err := NewLRU[int, string](2)
	require.NoError(t, err)

	assert.False(t, c.Add(1, "a"))
	assert.False(t, c.Add(2, "b"))

	// touch 1 so 2 becomes the eviction candidate
	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	assert.True(t, c.Add(3, "c"))
	assert.False(t, c.Contains(2))
	assert.True(t, c.Contains(1))
	assert.Equal(t, 2, c.Len())

	c.Remove(1)
	_, ok = c.Get(1)
	assert.False(t, ok)

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestLRUGetOrLoad(t *testing.T) {
	c, err := NewLRU[string, int](4)
	require.NoError(t, err)

	calls := 0
	loader := func(k string) (int, error) {
		calls++
		if k == "bad" {
			return 0, errors.New("not found")
		}
		return len(k), nil
	}

	for range 3 {
		v, err := c.GetOrLoad("four", loader)
		require.NoError(t, err)
		assert.Equal(t, 4, v)
	}
	assert.Equal(t, 1, calls)

	_, err = c.GetOrLoad("bad", loader)
	assert.Error(t, err)
	assert.False(t, c.Contains("bad"))
}
