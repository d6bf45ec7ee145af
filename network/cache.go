package network

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// defaultTTL applies to responses without caching headers.
const defaultTTL = 5 * time.Minute

// CacheEntry is a cached HTTP response.
type CacheEntry struct {
	Response *Response
	CachedAt time.Time
	Expires  time.Time
}

// IsExpired returns true if the entry is past its expiry time.
func (e *CacheEntry) IsExpired(now time.Time) bool {
	return !now.Before(e.Expires)
}

// Cache is an in-memory HTTP response cache bounded by entry count.
type Cache struct {
	entries map[string]*CacheEntry
	maxSize int
	now     func() time.Time
	mu      sync.RWMutex
}

// NewCache creates a cache holding at most maxSize entries.
func NewCache(maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 1000
	}
	return &Cache{
		entries: make(map[string]*CacheEntry),
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns the entry for url if it is present and fresh.
func (c *Cache) Get(url string) (*CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[url]
	if !ok || entry.IsExpired(c.now()) {
		return nil, false
	}
	return entry, true
}

// Set stores resp unless its Cache-Control forbids it.
func (c *Cache) Set(url string, resp *Response) {
	now := c.now()
	expires, ok := expiry(resp.Headers, now)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[url]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[url] = &CacheEntry{Response: resp, CachedAt: now, Expires: expires}
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*CacheEntry)
}

// Size returns the number of entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictOldest removes the entry cached first. Must be called with c.mu held.
func (c *Cache) evictOldest() {
	var oldestURL string
	var oldest time.Time
	for url, entry := range c.entries {
		if oldestURL == "" || entry.CachedAt.Before(oldest) {
			oldestURL = url
			oldest = entry.CachedAt
		}
	}
	if oldestURL != "" {
		delete(c.entries, oldestURL)
	}
}

// expiry computes when a response expires. It reports false when the
// response must not be stored.
func expiry(headers http.Header, now time.Time) (time.Time, bool) {
	for _, directive := range strings.Split(headers.Get("Cache-Control"), ",") {
		directive = strings.ToLower(strings.TrimSpace(directive))
		switch {
		case directive == "no-store" || directive == "no-cache":
			return time.Time{}, false
		case strings.HasPrefix(directive, "max-age="):
			seconds, err := strconv.Atoi(directive[len("max-age="):])
			if err != nil || seconds <= 0 {
				return time.Time{}, false
			}
			return now.Add(time.Duration(seconds) * time.Second), true
		}
	}
	if expires := headers.Get("Expires"); expires != "" {
		t, err := http.ParseTime(expires)
		if err != nil || !t.After(now) {
			return time.Time{}, false
		}
		return t, true
	}
	return now.Add(defaultTTL), true
}
