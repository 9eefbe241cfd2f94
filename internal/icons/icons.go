// Package icons caches loaded item icons.
package icons

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/crystarium-boutique/internal/resource"
)

var errNoProvider = errors.New("no resource provider")

// Cache resolves icon ids to loaded resources, loading each on first use.
//
// Successful loads are kept for the lifetime of the cache and the same
// handle is returned on every later call. Failures are not remembered, so a
// later call retries the provider. Cache is not safe for concurrent use.
type Cache struct {
	provider resource.Provider
	entries  map[uint32]resource.Handle
	log      *zap.Logger

	// Stats
	hits     int
	misses   int
	failures int
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits     int
	Misses   int
	Failures int
	Entries  int
}

// New creates a cache backed by provider. A nil provider is allowed; every
// lookup then yields no icon.
func New(provider resource.Provider, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{
		provider: provider,
		entries:  make(map[uint32]resource.Handle),
		log:      log,
	}
}

// Get returns the icon for iconID. Icon 0 means "no icon" and never reaches
// the provider.
func (c *Cache) Get(iconID uint32) (resource.Handle, bool) {
	if iconID == 0 {
		return nil, false
	}

	if h, ok := c.entries[iconID]; ok {
		c.hits++
		return h, true
	}
	c.misses++

	h, err := c.load(iconID)
	if err != nil {
		c.failures++
		c.log.Debug("icon unavailable", zap.Uint32("icon", iconID), zap.Error(err))
		return nil, false
	}

	c.entries[iconID] = h
	return h, true
}

func (c *Cache) load(iconID uint32) (h resource.Handle, err error) {
	if c.provider == nil {
		return nil, errNoProvider
	}

	defer func() {
		if r := recover(); r != nil {
			h, err = nil, fmt.Errorf("provider panic: %v", r)
		}
	}()

	h, err = c.provider.Lookup(iconID)
	if err != nil {
		return nil, err
	}
	if h == nil || h.Image() == nil {
		return nil, fmt.Errorf("provider returned no usable image for icon %d", iconID)
	}
	return h, nil
}

// Len returns the number of cached icons.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:     c.hits,
		Misses:   c.misses,
		Failures: c.failures,
		Entries:  len(c.entries),
	}
}

// Close releases every cached icon once and empties the cache. Release
// errors are logged and otherwise ignored.
func (c *Cache) Close() {
	for id, h := range c.entries {
		if err := release(h); err != nil {
			c.log.Warn("icon release failed", zap.Uint32("icon", id), zap.Error(err))
		}
	}
	c.entries = make(map[uint32]resource.Handle)
}

func release(h resource.Handle) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("release panic: %v", r)
		}
	}()
	return h.Release()
}
