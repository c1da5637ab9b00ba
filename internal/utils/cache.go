package utils

import (
	"os"
	"sync"
	"time"
)

// CacheItem is a cached value with the file metadata it was computed from
type CacheItem[T any] struct {
	Value   T
	ModTime time.Time
	Size    int64
}

// Cache is a concurrency-safe map whose entries can be tied to a file's
// modification time and size
type Cache[K comparable, V any] struct {
	items  map[K]*CacheItem[V]
	mutex  sync.RWMutex
	hits   int64
	misses int64
}

// NewCache creates an empty cache
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]*CacheItem[V]),
	}
}

// Get retrieves an item without file validation
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if item, exists := c.items[key]; exists {
		c.hits++
		return item.Value, true
	}

	c.misses++
	var zero V
	return zero, false
}

// GetWithFileValidation retrieves an item only while filePath still has the
// modification time and size recorded for it; stale entries are dropped
func (c *Cache[K, V]) GetWithFileValidation(key K, filePath string) (V, bool) {
	var zero V

	c.mutex.RLock()
	item, exists := c.items[key]
	c.mutex.RUnlock()

	if exists {
		if stat, err := os.Stat(filePath); err == nil &&
			stat.ModTime().Equal(item.ModTime) && stat.Size() == item.Size {
			c.mutex.Lock()
			c.hits++
			c.mutex.Unlock()
			return item.Value, true
		}
	}

	c.mutex.Lock()
	if exists {
		delete(c.items, key)
	}
	c.misses++
	c.mutex.Unlock()

	return zero, false
}

// Set stores an item with no file metadata
func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = &CacheItem[V]{Value: value}
}

// SetWithFileInfo stores an item along with the current metadata of filePath
func (c *Cache[K, V]) SetWithFileInfo(key K, value V, filePath string) error {
	stat, err := os.Stat(filePath)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = &CacheItem[V]{
		Value:   value,
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
	}

	return nil
}

// GetOrLoad returns the cached value for filePath or calls load and caches
// its result. Load errors are returned and nothing is cached.
func (c *Cache[K, V]) GetOrLoad(key K, filePath string, load func() (V, error)) (V, error) {
	if value, ok := c.GetWithFileValidation(key, filePath); ok {
		return value, nil
	}

	value, err := load()
	if err != nil {
		var zero V
		return zero, err
	}

	// a file removed between load and stat is simply not cached
	_ = c.SetWithFileInfo(key, value, filePath)
	return value, nil
}

// Delete removes an item
func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
}

// Size returns the number of items in the cache
func (c *Cache[K, V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}

// GetStats returns cache statistics
func (c *Cache[K, V]) GetStats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return CacheStats{
		Size:   len(c.items),
		Hits:   c.hits,
		Misses: c.misses,
	}
}

// CacheStats provides cache statistics
type CacheStats struct {
	Size   int
	Hits   int64
	Misses int64
}
