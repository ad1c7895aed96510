package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultLRUCacheSize is the default maximum memory size for the LRU
// result cache (64 MB) — parsed ASTs are small relative to git blobs, so
// this is a fourth of the teacher's DefaultLRUCacheSize.
const DefaultLRUCacheSize = 64 * 1024 * 1024

const bytesPerKB = 1024.0

// evictionSampleSize is the number of LRU tail candidates sampled for
// size-aware eviction, avoiding an O(n) scan. Grounded on the teacher's
// pkg/cache/lru.go LRUBlobCache.
const evictionSampleSize = 5

// LRUResultCache is a size-aware LRU cache of parsed-AST results keyed by
// ContentHash, adapted from the teacher's pkg/cache.LRUBlobCache (itself
// keyed by git blob hash) to the content-hash domain. T is typically
// *scadast.File; sizeFunc reports its approximate in-memory size in bytes
// (usually len(source) for the originating buffer, since an exact AST
// byte count isn't worth computing).
type LRUResultCache[T any] struct {
	mu          sync.RWMutex
	entries     map[ContentHash]*lruEntry[T]
	head        *lruEntry[T]
	tail        *lruEntry[T]
	maxSize     int64
	currentSize int64
	sizeFunc    func(T) int64

	hits   atomic.Int64
	misses atomic.Int64
}

type lruEntry[T any] struct {
	hash        ContentHash
	value       T
	size        int64
	accessCount int64
	prev        *lruEntry[T]
	next        *lruEntry[T]
}

func (e *lruEntry[T]) evictionCost() float64 {
	if e.size == 0 {
		return float64(e.accessCount)
	}

	sizeKB := float64(e.size) / bytesPerKB
	if sizeKB < 1 {
		sizeKB = 1
	}

	return float64(e.accessCount) / sizeKB
}

// NewLRUResultCache creates a new LRU result cache with the given max
// size in bytes and size function.
func NewLRUResultCache[T any](maxSize int64, sizeFunc func(T) int64) *LRUResultCache[T] {
	if maxSize <= 0 {
		maxSize = DefaultLRUCacheSize
	}

	return &LRUResultCache[T]{
		entries:  make(map[ContentHash]*lruEntry[T]),
		maxSize:  maxSize,
		sizeFunc: sizeFunc,
	}
}

// Get retrieves a value from the cache. Returns the zero value and false
// if not found.
func (c *LRUResultCache[T]) Get(hash ContentHash) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[hash]
	if !ok {
		c.misses.Add(1)

		var zero T

		return zero, false
	}

	c.hits.Add(1)
	entry.accessCount++
	c.moveToFront(entry)

	return entry.value, true
}

// Put adds a value to the cache, evicting lowest-cost entries if needed.
func (c *LRUResultCache[T]) Put(hash ContentHash, value T) {
	size := c.sizeFunc(value)
	if size > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[hash]; ok {
		entry.accessCount++
		c.moveToFront(entry)

		return
	}

	for c.currentSize+size > c.maxSize && c.tail != nil {
		c.evictLowestCost()
	}

	entry := &lruEntry[T]{hash: hash, value: value, size: size, accessCount: 1}
	c.entries[hash] = entry
	c.currentSize += size
	c.addToFront(entry)
}

// LRUStats holds cache performance metrics.
type LRUStats struct {
	Hits        int64
	Misses      int64
	Entries     int
	CurrentSize int64
	MaxSize     int64
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (s LRUStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}

	return float64(s.Hits) / float64(total)
}

// Stats returns cache statistics.
func (c *LRUResultCache[T]) Stats() LRUStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return LRUStats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Entries:     len(c.entries),
		CurrentSize: c.currentSize,
		MaxSize:     c.maxSize,
	}
}

// CacheHits returns the total cache hit count (atomic, lock-free).
func (c *LRUResultCache[T]) CacheHits() int64 { return c.hits.Load() }

// CacheMisses returns the total cache miss count (atomic, lock-free).
func (c *LRUResultCache[T]) CacheMisses() int64 { return c.misses.Load() }

// Clear removes all entries from the cache.
func (c *LRUResultCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[ContentHash]*lruEntry[T])
	c.head = nil
	c.tail = nil
	c.currentSize = 0
}

func (c *LRUResultCache[T]) moveToFront(entry *lruEntry[T]) {
	if entry == c.head {
		return
	}

	c.removeFromList(entry)
	c.addToFront(entry)
}

func (c *LRUResultCache[T]) addToFront(entry *lruEntry[T]) {
	entry.prev = nil
	entry.next = c.head

	if c.head != nil {
		c.head.prev = entry
	}

	c.head = entry

	if c.tail == nil {
		c.tail = entry
	}
}

func (c *LRUResultCache[T]) removeFromList(entry *lruEntry[T]) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}

	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
}

func (c *LRUResultCache[T]) evictLowestCost() {
	if c.tail == nil {
		return
	}

	var candidates [evictionSampleSize]*lruEntry[T]

	count := 0
	entry := c.tail

	for entry != nil && count < evictionSampleSize {
		candidates[count] = entry
		count++
		entry = entry.prev
	}

	if count == 0 {
		return
	}

	victim := candidates[0]
	lowestCost := victim.evictionCost()

	for i := 1; i < count; i++ {
		cost := candidates[i].evictionCost()
		if cost < lowestCost {
			lowestCost = cost
			victim = candidates[i]
		}
	}

	c.removeFromList(victim)
	delete(c.entries, victim.hash)
	c.currentSize -= victim.size
}
