package site

import (
	"sync"
	"time"
)

// CollectionCache is an in-memory, TTL-bounded view of the published store
// used by the preview server. The underlying collection is immutable between
// reloads, so readers share it without copying.
type CollectionCache struct {
	mu      sync.RWMutex
	public  *Collection
	drafts  *Collection
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewCollectionCache creates a cache backed by the given store.
func NewCollectionCache(s *Store, ttl time.Duration) *CollectionCache {
	return &CollectionCache{store: s, ttl: ttl}
}

func (c *CollectionCache) valid() bool {
	return c.public != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *CollectionCache) Invalidate() {
	c.mu.Lock()
	c.public = nil
	c.drafts = nil
	c.mu.Unlock()
}

func (c *CollectionCache) load() error {
	if c.valid() {
		return nil
	}
	public, err := c.store.ListDocuments(false)
	if err != nil {
		return err
	}
	all, err := c.store.ListDocuments(true)
	if err != nil {
		return err
	}
	// Stored documents were deduplicated at assembly time, so Assemble
	// cannot produce issues here.
	c.public, _ = Assemble(public)
	c.drafts, _ = Assemble(all)
	c.fetched = time.Now()
	return nil
}

// Collection returns the published collection, including drafts when asked.
// It tries a read lock first; a write lock is only taken for a reload.
func (c *CollectionCache) Collection(includeDrafts bool) (*Collection, error) {
	c.mu.RLock()
	if c.valid() {
		public, drafts := c.public, c.drafts
		c.mu.RUnlock()
		if includeDrafts {
			return drafts, nil
		}
		return public, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	if includeDrafts {
		return c.drafts, nil
	}
	return c.public, nil
}
