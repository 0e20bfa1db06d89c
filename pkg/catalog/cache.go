package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// Cache stores decoded responses keyed by their relative URL
type Cache interface {
	// Lookup returns the cached value and true on a hit, or false on a miss
	Lookup(key string) (map[string]any, bool)
	Store(key string, value map[string]any)
}

type MemoryCache struct {
	mutex   sync.RWMutex
	entries map[string]map[string]any
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]map[string]any)}
}

func (cache *MemoryCache) Lookup(key string) (map[string]any, bool) {
	cache.mutex.RLock()
	defer cache.mutex.RUnlock()
	value, ok := cache.entries[key]
	return value, ok
}

func (cache *MemoryCache) Store(key string, value map[string]any) {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	cache.entries[key] = value
}

func (cache *MemoryCache) Len() int {
	cache.mutex.RLock()
	defer cache.mutex.RUnlock()
	return len(cache.entries)
}

// FileCache is a memory cache persisted as a JSON file
type FileCache struct {
	*MemoryCache
	fileName string
}

// OpenFileCache loads the cache from disk. A missing file yields an empty cache.
func OpenFileCache(fileName string) (*FileCache, error) {
	cache := &FileCache{MemoryCache: NewMemoryCache(), fileName: fileName}

	bytes, err := os.ReadFile(fileName)
	if errors.Is(err, fs.ErrNotExist) {
		return cache, nil
	} else if err != nil {
		return nil, fmt.Errorf("cannot read cache file %q: %w", fileName, err)
	}

	if err := json.Unmarshal(bytes, &cache.entries); err != nil {
		return nil, fmt.Errorf("cannot parse cache file %q: %w", fileName, err)
	}
	if cache.entries == nil {
		cache.entries = make(map[string]map[string]any)
	}
	return cache, nil
}

// Save writes the cache to disk
func (cache *FileCache) Save() error {
	cache.mutex.RLock()
	bytes, err := json.Marshal(cache.entries)
	cache.mutex.RUnlock()
	if err != nil {
		return fmt.Errorf("cannot encode cache: %w", err)
	}

	if err := os.WriteFile(cache.fileName, bytes, 0666); err != nil {
		return fmt.Errorf("cannot write cache file %q: %w", cache.fileName, err)
	}
	return nil
}
