package scan

import (
	"sync"
	"time"
)

// Cache 按地址缓存已解析交易, 过期时间在读取时判定 (惰性过期).
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	transactions []ParsedTransaction
	cachedAt     time.Time
}

// NewCache returns a TTL cache keyed by address. expirationMinutes <= 0
// disables expiry.
func NewCache(expirationMinutes int, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}

	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     time.Duration(expirationMinutes) * time.Minute,
		now:     now,
	}
}

// Get returns the cached transactions for address, or false when the
// entry is absent or stale.
func (c *Cache) Get(address string) ([]ParsedTransaction, bool) {
	c.mu.RLock()
	entry, ok := c.entries[address]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.cachedAt) > c.ttl {
		return nil, false
	}

	return entry.transactions, true
}

// Set stores transactions for address with the current timestamp.
func (c *Cache) Set(address string, transactions []ParsedTransaction) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[address] = cacheEntry{
		transactions: transactions,
		cachedAt:     c.now(),
	}
}
