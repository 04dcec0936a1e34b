// Package cache provides an in-memory TTL cache with ETag support for
// decoded save files. Entries are stamped with the source file's size and
// modification time, so a file rewritten by the game is never served stale.
package cache

import (
	"crypto/md5"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// TTL constants per kind of save file.
const (
	TTLLeague  = 1 * time.Hour   // league.dat changes once per sim day
	TTLPlayers = 1 * time.Hour   // players.dat, same cadence
	TTLWeek    = 24 * time.Hour  // a finished week is never rewritten
	TTLListing = 1 * time.Minute // directory listings
)

// Stamp identifies one version of a file on disk.
type Stamp struct {
	Size    int64
	ModTime time.Time
}

// StampOf returns the stamp of a stat result.
func StampOf(fi fs.FileInfo) Stamp {
	return Stamp{Size: fi.Size(), ModTime: fi.ModTime()}
}

type entry struct {
	data      []byte
	etag      string
	stamp     Stamp
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	enabled bool
	maxTTL  time.Duration

	group singleflight.Group
	hits  uint64
	miss  uint64
}

// New creates a new cache. Pass enabled=false to create a no-op cache.
// maxTTL caps every per-kind TTL; zero means no cap.
func New(enabled bool, maxTTL time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		enabled: enabled,
		maxTTL:  maxTTL,
	}
	if enabled {
		go c.evictLoop()
	}
	return c
}

// Key joins key parts, e.g. Key("week", league, "2030", "4").
func Key(parts ...string) string {
	return strings.Join(parts, "/")
}

// Get retrieves a cached value. Returns data, etag, and whether the entry
// was found for this exact file stamp.
func (c *Cache) Get(key string, stamp Stamp) (data []byte, etag string, ok bool) {
	if !c.enabled {
		return nil, "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, exists := c.entries[key]
	if !exists || time.Now().After(e.expiresAt) || !e.stamp.equal(stamp) {
		return nil, "", false
	}
	return e.data, e.etag, true
}

// Set stores a value with a TTL.
func (c *Cache) Set(key string, stamp Stamp, data []byte, ttl time.Duration) string {
	etag := ComputeETag(data)
	if !c.enabled {
		return etag
	}
	if c.maxTTL > 0 && ttl > c.maxTTL {
		ttl = c.maxTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		data:      data,
		etag:      etag,
		stamp:     stamp,
		expiresAt: time.Now().Add(ttl),
	}
	return etag
}

// Load returns the cached value for key, or runs fill once for all
// concurrent callers and caches its result. Errors are not cached.
func (c *Cache) Load(key string, stamp Stamp, ttl time.Duration, fill func() ([]byte, error)) (data []byte, etag string, err error) {
	if data, etag, ok := c.Get(key, stamp); ok {
		c.count(true)
		return data, etag, nil
	}
	c.count(false)

	type filled struct {
		data []byte
		etag string
	}
	// A rewritten file gets its own flight.
	flight := fmt.Sprintf("%s@%d:%d", key, stamp.Size, stamp.ModTime.UnixNano())
	v, err, _ := c.group.Do(flight, func() (interface{}, error) {
		data, err := fill()
		if err != nil {
			return nil, err
		}
		return filled{data, c.Set(key, stamp, data, ttl)}, nil
	})
	if err != nil {
		return nil, "", err
	}
	f := v.(filled)
	return f.data, f.etag, nil
}

func (c *Cache) count(hit bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if hit {
		c.hits++
	} else {
		c.miss++
	}
}

// Stats returns cache statistics.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	active := 0
	now := time.Now()
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			active++
		}
	}
	return map[string]interface{}{
		"enabled":      c.enabled,
		"total_keys":   len(c.entries),
		"active_keys":  active,
		"expired_keys": len(c.entries) - active,
		"hits":         c.hits,
		"misses":       c.miss,
	}
}

// evictLoop periodically removes expired entries.
func (c *Cache) evictLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		c.evict()
	}
}

func (c *Cache) evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (s Stamp) equal(o Stamp) bool {
	return s.Size == o.Size && s.ModTime.Equal(o.ModTime)
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch checks if If-None-Match header matches the current ETag.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		if strings.TrimSpace(candidate) == etag {
			return true
		}
	}
	return false
}
