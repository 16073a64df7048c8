// Package cache memoizes a document's chunk list against a fingerprint of
// its source bytes and chunking options, so re-processing an unchanged
// document under unchanged options is a lookup instead of a re-run of the
// whole pipeline. Built on github.com/hashicorp/golang-lru/v2 for the
// size-bounded LRU core (the same dependency surface
// custodia-labs-sercha-core's go.mod carries for this concern), wrapped
// with a byte-budget counter, a TTL sweep, and singleflight build
// coalescing so concurrent lookups for the same missing key wait on the
// in-flight build instead of racing.
package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/fluxdoc/fluxdoc/pkg/docmodel"
)

// Entry is one cached build result: the full chunk list plus the document
// metadata the pipeline produced it from, and when it was built.
type Entry struct {
	Chunks       []docmodel.DocumentChunk
	Language     docmodel.LanguageInfo
	BuiltAt      time.Time
	LastAccessed time.Time
	ByteSize     int64
}

// Options configures a Cache's eviction policy.
type Options struct {
	// MaxEntries bounds the LRU's entry count.
	MaxEntries int
	// MaxEntryBytes rejects an insertion whose Entry alone exceeds this
	// many bytes, so one huge document can't evict the whole cache.
	MaxEntryBytes int64
	// MaxTotalBytes is the aggregate byte budget tracked alongside the LRU.
	MaxTotalBytes int64
	// TTL is how long an entry remains valid after BuiltAt.
	TTL time.Duration
	// SweepInterval is how often the background goroutine evicts expired
	// entries. Zero disables the background sweep (callers can still call
	// Sweep directly, e.g. from tests).
	SweepInterval time.Duration
}

// DefaultOptions returns spec.md §4.6's defaults: 1000 entries, 500 MB
// aggregate, 50 MB per entry, 24h TTL, 30 min sweep interval.
func DefaultOptions() Options {
	return Options{
		MaxEntries:    1000,
		MaxEntryBytes: 50 * 1024 * 1024,
		MaxTotalBytes: 500 * 1024 * 1024,
		TTL:           24 * time.Hour,
		SweepInterval: 30 * time.Minute,
	}
}

// Cache is a fingerprint-keyed, byte-budgeted, TTL-evicting chunk-list
// cache with single-flight build coalescing.
type Cache struct {
	opts  Options
	lru   *lru.Cache[string, *Entry]
	group singleflight.Group

	mu         sync.Mutex
	totalBytes int64

	stopSweep chan struct{}
}

// New creates a Cache and, if opts.SweepInterval is nonzero, starts its
// background TTL sweep goroutine.
func New(opts Options) (*Cache, error) {
	c := &Cache{opts: opts, stopSweep: make(chan struct{})}
	evicted := func(key string, entry *Entry) {
		c.mu.Lock()
		c.totalBytes -= entry.ByteSize
		c.mu.Unlock()
	}
	l, err := lru.NewWithEvict[string, *Entry](opts.MaxEntries, evicted)
	if err != nil {
		return nil, err
	}
	c.lru = l

	if opts.SweepInterval > 0 {
		go c.sweepLoop()
	}
	return c, nil
}

// Close stops the background sweep goroutine, if running.
func (c *Cache) Close() {
	select {
	case <-c.stopSweep:
	default:
		close(c.stopSweep)
	}
}

// Get returns a cached, unexpired entry and bumps its last-access time.
func (c *Cache) Get(key string) (*Entry, bool) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	if c.opts.TTL > 0 && time.Since(entry.BuiltAt) > c.opts.TTL {
		c.remove(key)
		return nil, false
	}
	entry.LastAccessed = time.Now()
	return entry, true
}

// Put inserts or overwrites an entry, enforcing the per-entry and
// aggregate byte budgets. A per-entry cap violation is reported but not
// inserted; an aggregate budget violation evicts least-recently-used
// entries (evictUntilUnderBudget, after Add) until the aggregate byte
// total is back under budget.
func (c *Cache) Put(key string, entry *Entry) bool {
	if c.opts.MaxEntryBytes > 0 && entry.ByteSize > c.opts.MaxEntryBytes {
		return false
	}
	entry.BuiltAt = time.Now()
	entry.LastAccessed = entry.BuiltAt

	c.mu.Lock()
	if old, ok := c.lru.Peek(key); ok {
		c.totalBytes -= old.ByteSize
	}
	c.totalBytes += entry.ByteSize
	over := c.opts.MaxTotalBytes > 0 && c.totalBytes > c.opts.MaxTotalBytes
	c.mu.Unlock()

	c.lru.Add(key, entry)

	if over {
		c.evictUntilUnderBudget()
	}
	return true
}

// evictUntilUnderBudget removes the least-recently-used entries (the LRU's
// own ordering) until the aggregate byte budget is satisfied or the cache
// is empty.
func (c *Cache) evictUntilUnderBudget() {
	for {
		c.mu.Lock()
		overBudget := c.opts.MaxTotalBytes > 0 && c.totalBytes > c.opts.MaxTotalBytes
		c.mu.Unlock()
		if !overBudget {
			return
		}
		keys := c.lru.Keys()
		if len(keys) == 0 {
			return
		}
		// Keys() is returned oldest-first by the underlying LRU.
		c.remove(keys[0])
	}
}

func (c *Cache) remove(key string) {
	c.lru.Remove(key)
}

// GetOrBuild returns a cached entry, or calls build and caches its result,
// coalescing concurrent builds for the same key via singleflight so two
// callers racing on a cold key only run build once.
func (c *Cache) GetOrBuild(ctx context.Context, key string, build func(ctx context.Context) (*Entry, error)) (*Entry, error) {
	if entry, ok := c.Get(key); ok {
		return entry, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		if entry, ok := c.Get(key); ok {
			return entry, nil
		}
		entry, err := build(ctx)
		if err != nil {
			return nil, err
		}
		c.Put(key, entry)
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entry), nil
}

// sweepLoop evicts TTL-expired entries in batches of 50 at a configurable
// interval.
func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(c.opts.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopSweep:
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}

// Sweep removes up to 50 TTL-expired entries; callers (tests, or a manual
// admin trigger) can invoke this directly instead of waiting for the
// background ticker.
func (c *Cache) Sweep() {
	if c.opts.TTL <= 0 {
		return
	}
	const batch = 50
	removed := 0
	for _, key := range c.lru.Keys() {
		if removed >= batch {
			return
		}
		entry, ok := c.lru.Peek(key)
		if !ok {
			continue
		}
		if time.Since(entry.BuiltAt) > c.opts.TTL {
			c.remove(key)
			removed++
		}
	}
}

// Len returns the current entry count.
func (c *Cache) Len() int { return c.lru.Len() }
