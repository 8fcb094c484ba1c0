// Package asset provides a memoizing cache over an application-supplied
// asset source. Rendered content reads assets during measurement and paint;
// the presentation core itself never writes to the cache.
package asset

import (
	"fmt"
	"sync"
)

// Source loads raw asset bytes by path.
type Source interface {
	Load(path string) ([]byte, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(path string) ([]byte, error)

// Load calls the underlying function.
func (f SourceFunc) Load(path string) ([]byte, error) {
	return f(path)
}

// Cache memoizes successful loads from a Source. Failed loads are not
// memoized, so a transiently missing asset can succeed on a later frame.
type Cache struct {
	mu      sync.RWMutex
	source  Source
	entries map[string][]byte
}

// NewCache creates a cache over the given source.
func NewCache(source Source) *Cache {
	return &Cache{
		source:  source,
		entries: make(map[string][]byte),
	}
}

// Load returns the bytes for path, fetching from the source on first use.
func (c *Cache) Load(path string) ([]byte, error) {
	c.mu.RLock()
	data, ok := c.entries[path]
	c.mu.RUnlock()
	if ok {
		return data, nil
	}

	if c.source == nil {
		return nil, fmt.Errorf("asset: no source configured for %q", path)
	}
	data, err := c.source.Load(path)
	if err != nil {
		return nil, fmt.Errorf("asset: load %q: %w", path, err)
	}

	c.mu.Lock()
	c.entries[path] = data
	c.mu.Unlock()
	return data, nil
}

// Len reports the number of memoized assets.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
