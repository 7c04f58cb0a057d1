// Package cache keeps recently extracted services on disk so the serve
// path does not hit the church site on every page load.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"finsk-kalender/internal/model"
)

// Entry is a cached set of services with its fetch timestamp.
type Entry struct {
	Services  []model.ChurchService `json:"services"`
	FetchedAt time.Time             `json:"fetched_at"`
}

// Cache is a disk-based TTL cache keyed by source name.
type Cache struct {
	dir string
	ttl time.Duration
	mu  sync.RWMutex
}

// New creates a cache under cacheDir. Entries older than ttl are treated
// as misses.
func New(cacheDir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	return &Cache{
		dir: cacheDir,
		ttl: ttl,
	}, nil
}

// Get retrieves cached services for a key if they exist and aren't expired.
func (c *Cache) Get(key string) ([]model.ChurchService, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.filePath(key))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Since(entry.FetchedAt) > c.ttl {
		return nil, false
	}

	return entry.Services, true
}

// Set stores services in the cache.
func (c *Cache) Set(key string, services []model.ChurchService) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{
		Services:  services,
		FetchedAt: time.Now(),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath(key), data, 0644)
}

// Invalidate removes a key's cache entry.
func (c *Cache) Invalidate(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.filePath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *Cache) filePath(key string) string {
	// Keep the file name filesystem-safe.
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, key)
	return filepath.Join(c.dir, safe+".json")
}
