package inventory

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tacticbot/tacticbot/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema.
// Increment when the cached inventory structure changes to auto-invalidate
// old entries.
const CacheSchemaVersion = "1.0"

type cachedInventoryEntry struct {
	Version   string
	Inventory *domain.PlayerInventory
	CachedAt  time.Time
}

// inventoryCache is an in-memory LRU for inventory reads with time-based
// expiration and version checks. Writers must invalidate after persisting.
type inventoryCache struct {
	lru *expirable.LRU[string, *cachedInventoryEntry]
}

func newInventoryCache(size int, ttl time.Duration) *inventoryCache {
	return &inventoryCache{
		lru: expirable.NewLRU[string, *cachedInventoryEntry](size, nil, ttl),
	}
}

func (c *inventoryCache) Get(playerID string) (*domain.PlayerInventory, bool) {
	entry, found := c.lru.Get(playerID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(playerID)
		return nil, false
	}
	return entry.Inventory, true
}

func (c *inventoryCache) Set(playerID string, inv *domain.PlayerInventory) {
	c.lru.Add(playerID, &cachedInventoryEntry{
		Version:   CacheSchemaVersion,
		Inventory: inv,
		CachedAt:  time.Now(),
	})
}

func (c *inventoryCache) Invalidate(playerID string) {
	c.lru.Remove(playerID)
}
