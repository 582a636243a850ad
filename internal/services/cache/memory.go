package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTTL applies when Set is called without a positive ttl
const DefaultTTL = 5 * time.Minute

// MemoryCache is a size-bounded in-memory cache with lazy and periodic expiry
type MemoryCache struct {
	mu       sync.Mutex
	items    map[string]*cacheItem
	maxBytes int64
	size     int64

	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	evictions atomic.Int64

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

type cacheItem struct {
	value  []byte
	expiry time.Time
	size   int64
}

// NewMemoryCache creates a cache holding at most maxBytes of keys and values.
// maxBytes <= 0 means unbounded. Expired entries are swept every sweepEvery.
func NewMemoryCache(maxBytes int64, sweepEvery time.Duration) *MemoryCache {
	mc := &MemoryCache{
		items:    make(map[string]*cacheItem),
		maxBytes: maxBytes,
		stopCh:   make(chan struct{}),
	}

	if sweepEvery > 0 {
		mc.wg.Add(1)
		go mc.sweep(sweepEvery)
	}

	return mc
}

// Get retrieves a value from the cache
func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	item, exists := mc.items[key]
	if !exists {
		mc.misses.Add(1)
		return nil, false
	}

	if time.Now().After(item.expiry) {
		mc.removeLocked(key, item)
		mc.misses.Add(1)
		return nil, false
	}

	mc.hits.Add(1)
	return item.value, true
}

// Set stores a value in the cache with a TTL. Values larger than the whole
// cache are silently dropped.
func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	size := int64(len(key) + len(value))
	if mc.maxBytes > 0 && size > mc.maxBytes {
		return nil
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	if old, exists := mc.items[key]; exists {
		mc.size -= old.size
		delete(mc.items, key)
	}
	mc.makeRoomLocked(size)

	mc.items[key] = &cacheItem{
		value:  value,
		expiry: time.Now().Add(ttl),
		size:   size,
	}
	mc.size += size
	mc.sets.Add(1)
	return nil
}

// Delete removes a value from the cache
func (mc *MemoryCache) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if item, exists := mc.items[key]; exists {
		delete(mc.items, key)
		mc.size -= item.size
	}
	return nil
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() Stats {
	mc.mu.Lock()
	size := mc.size
	mc.mu.Unlock()

	return Stats{
		Hits:      mc.hits.Load(),
		Misses:    mc.misses.Load(),
		Sets:      mc.sets.Load(),
		Evictions: mc.evictions.Load(),
		Size:      size,
		MaxSize:   mc.maxBytes,
	}
}

// Stop shuts down the sweeper; safe to call more than once
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopCh) })
	mc.wg.Wait()
}

func (mc *MemoryCache) sweep(every time.Duration) {
	defer mc.wg.Done()
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.mu.Lock()
			mc.removeExpiredLocked()
			mc.mu.Unlock()
		case <-mc.stopCh:
			return
		}
	}
}

func (mc *MemoryCache) removeLocked(key string, item *cacheItem) {
	delete(mc.items, key)
	mc.size -= item.size
	mc.evictions.Add(1)
}

func (mc *MemoryCache) removeExpiredLocked() {
	now := time.Now()
	for key, item := range mc.items {
		if now.After(item.expiry) {
			mc.removeLocked(key, item)
		}
	}
}

// makeRoomLocked evicts expired entries, then the soonest-to-expire ones
func (mc *MemoryCache) makeRoomLocked(sizeNeeded int64) {
	if mc.maxBytes <= 0 || mc.size+sizeNeeded <= mc.maxBytes {
		return
	}

	mc.removeExpiredLocked()

	for mc.size+sizeNeeded > mc.maxBytes && len(mc.items) > 0 {
		var (
			victimKey string
			victim    *cacheItem
		)
		for key, item := range mc.items {
			if victim == nil || item.expiry.Before(victim.expiry) {
				victimKey, victim = key, item
			}
		}
		mc.removeLocked(victimKey, victim)
	}
}
