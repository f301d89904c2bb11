// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import lru "github.com/hashicorp/golang-lru"

// LRU is a typed view over golang-lru.
type LRU[K comparable, V any] struct {
	inner *lru.Cache
}

// NewLRU create a LRU cache instance.
// maxSize should be > 0, or an error returned.
func NewLRU[K comparable, V any](maxSize int) (*LRU[K, V], error) {
	c, err := lru.New(maxSize)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{c}, nil
}

// Add adds a value to the cache, returns true if an eviction occurred.
func (l *LRU[K, V]) Add(key K, value V) bool {
	return l.inner.Add(key, value)
}

// Get looks up a key's value and marks it as recently used.
func (l *LRU[K, V]) Get(key K) (v V, ok bool) {
	raw, ok := l.inner.Get(key)
	if !ok {
		return v, false
	}
	return raw.(V), true
}

// Contains checks the key without updating recentness.
func (l *LRU[K, V]) Contains(key K) bool {
	return l.inner.Contains(key)
}

// Remove evicts the key.
func (l *LRU[K, V]) Remove(key K) {
	l.inner.Remove(key)
}

// Len returns the number of cached entries.
func (l *LRU[K, V]) Len() int {
	return l.inner.Len()
}

// Purge clears the cache.
func (l *LRU[K, V]) Purge() {
	l.inner.Purge()
}

// GetOrLoad first try to get from cache, do load if missed.
func (l *LRU[K, V]) GetOrLoad(key K, loader func(K) (V, error)) (V, error) {
	if v, ok := l.Get(key); ok {
		return v, nil
	}
	v, err := loader(key)
	if err != nil {
		return v, err
	}
	l.Add(key, v)
	return v, nil
}
