package homepage

import (
	"io/fs"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// ContentCache is an in-memory copy of the fixture collections with a TTL,
// so edits to the JSON files show up without a restart.
type ContentCache struct {
	mu      sync.RWMutex
	content *Content
	fetched time.Time
	ttl     time.Duration
	fsys    fs.FS
	logger  echo.Logger
}

// NewContentCache creates a ContentCache reading from fsys.
func NewContentCache(fsys fs.FS, ttl time.Duration, logger echo.Logger) *ContentCache {
	return &ContentCache{fsys: fsys, ttl: ttl, logger: logger}
}

func (c *ContentCache) valid() bool {
	return c.content != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.content = nil
	c.mu.Unlock()
}

// Content returns the cached collections, reloading them once the TTL has
// passed. Callers must treat the returned slices as read-only.
func (c *ContentCache) Content() Content {
	c.mu.RLock()
	if c.valid() {
		content := *c.content
		c.mu.RUnlock()
		return content
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		loaded := LoadContent(c.fsys, c.logger)
		c.content = &loaded
		c.fetched = time.Now()
	}
	return *c.content
}
