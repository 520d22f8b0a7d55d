package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RenderFunc produces the HTML for a path with an empty render context.
// Warm uses it to pre-populate the cache.
type RenderFunc func(ctx context.Context, path string) (string, error)

// Entry is a memoized rendered page.
type Entry struct {
	// Content is the final HTML.
	Content string

	// CreatedAt is when the entry was stored.
	CreatedAt time.Time
}

// Cache memoizes rendered HTML per path with a time-to-live. Entries are
// evicted lazily when a stale read finds them; there is no size cap and no
// sweeper, since the entry count is bounded by the number of discovered
// routes, not by request volume.
//
// The cache is the only state shared across in-flight renders, so all
// operations are mutex-guarded.
type Cache struct {
	mu      sync.Mutex
	maxAge  time.Duration
	entries map[string]Entry
	log     *slog.Logger

	// now is swapped out by tests to advance time.
	now func() time.Time
}

// New creates a cache whose entries are valid for maxAge after creation.
func New(maxAge time.Duration) *Cache {
	return &Cache{
		maxAge:  maxAge,
		entries: make(map[string]Entry),
		log:     slog.Default().With("component", "cache"),
		now:     time.Now,
	}
}

// Get returns the cached content for path if present and fresh. A stale
// entry is evicted and reported as a miss.
func (c *Cache) Get(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok {
		return "", false
	}
	if c.now().Sub(entry.CreatedAt) > c.maxAge {
		delete(c.entries, path)
		return "", false
	}
	return entry.Content, true
}

// Set stores content for path with the current timestamp, unconditionally
// overwriting any prior entry.
func (c *Cache) Set(path, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = Entry{Content: content, CreatedAt: c.now()}
}

// Len returns the number of entries, including any not yet evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries. The dev server calls this when route files
// change.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry)
}

// Warm renders each path with an empty context and stores the result.
// Pre-warming is best-effort: a path whose render fails (for example, a
// route that needs request context) is logged and skipped, never fatal.
// It returns the number of entries stored.
func (c *Cache) Warm(ctx context.Context, paths []string, render RenderFunc) int {
	warmed := 0
	for _, path := range paths {
		content, err := render(ctx, path)
		if err != nil {
			c.log.Warn("skipping route during cache warm", "path", path, "error", err)
			continue
		}
		c.Set(path, content)
		warmed++
	}
	return warmed
}
