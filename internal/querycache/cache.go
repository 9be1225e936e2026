// Package querycache is a key-addressed cache of asynchronous query
// results shared by all view controllers. It coalesces concurrent
// identical fetches, serves stale entries while revalidating in the
// background, and supports cursor-based forward pagination.
//
// The cache is an explicit object handed to controllers; there is no
// package-level instance. Invalidation is the only sanctioned mutation
// path for cached data.
package querycache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/strawberrySword/hermes/internal/domain"
)

// DefaultStaleAfter is how long an entry stays fresh before a read makes
// it eligible for background revalidation.
const DefaultStaleAfter = 5 * time.Minute

// ErrDisabled is returned when a query key is gated off (for example
// until authentication is ready) and holds no cached value.
var ErrDisabled = errors.New("query disabled")

// Key identifies one cached query as an ordered tuple of parts,
// e.g. ("articles", topic) or ("likes", userID, articleID).
type Key []string

func NewKey(parts ...string) Key {
	return Key(parts)
}

const keySeparator = "\x1f"

func (k Key) String() string {
	return strings.Join(k, keySeparator)
}

// HasPrefix reports whether k begins with every part of prefix, in order.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, part := range prefix {
		if k[i] != part {
			return false
		}
	}
	return true
}

type entry struct {
	key Key

	// Single-value queries.
	value    any
	hasValue bool

	// Infinite queries. pages holds a []Page[T]; the concrete element
	// type is only known to the generic accessors.
	pages      any
	pageCount  int
	nextCursor string
	hasNext    bool

	fetchedAt  time.Time
	invalid    bool
	fetching   bool
	refreshing bool
	enabled    bool
	lastErr    error
}

// Cache maps query keys to cached results. Within one key fetches are
// strictly sequential; across keys they proceed independently.
type Cache struct {
	staleAfter time.Duration
	clock      func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	group   singleflight.Group
}

// Option configures a Cache.
type Option func(*Cache)

// WithStaleAfter overrides the staleness threshold.
func WithStaleAfter(d time.Duration) Option {
	return func(c *Cache) { c.staleAfter = d }
}

// WithClock overrides the time source. Tests use it to age entries.
func WithClock(clock func() time.Time) Option {
	return func(c *Cache) { c.clock = clock }
}

func New(opts ...Option) *Cache {
	c := &Cache{
		staleAfter: DefaultStaleAfter,
		clock:      time.Now,
		entries:    map[string]*entry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// entryLocked returns the entry for key, creating it if needed.
// Callers must hold c.mu.
func (c *Cache) entryLocked(key Key) *entry {
	e, ok := c.entries[key.String()]
	if !ok {
		e = &entry{key: key, enabled: true}
		c.entries[key.String()] = e
	}
	return e
}

func (c *Cache) staleLocked(e *entry) bool {
	return c.clock().Sub(e.fetchedAt) > c.staleAfter
}

// Invalidate marks the given keys stale, forcing a refetch on next
// access. It does not block and does not discard cached data.
func (c *Cache) Invalidate(keys ...Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		if e, ok := c.entries[key.String()]; ok {
			e.invalid = true
		}
	}
}

// InvalidatePrefix marks stale every entry whose key begins with prefix.
func (c *Cache) InvalidatePrefix(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.invalid = true
		}
	}
}

// SetEnabled gates fetching for a key. A disabled key serves whatever is
// cached and starts no new fetch.
func (c *Cache) SetEnabled(key Key, enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entryLocked(key).enabled = enabled
}

// LastError returns the most recent fetch failure recorded for key, or
// nil. A failure never discards previously cached data, so callers can
// show an error state alongside stale content.
func (c *Cache) LastError(key Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.String()]; ok {
		return e.lastErr
	}
	return nil
}

// Get returns the cached value for key, fetching it if absent or
// invalidated. A fresh cached value is returned as-is; a value past the
// staleness threshold is returned immediately while one background
// refresh starts. Concurrent callers for the same key share a single
// in-flight fetch.
//
// If a refetch of an invalidated entry fails, the previous value is
// returned together with the error.
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	c.mu.Lock()
	e := c.entryLocked(key)

	if !e.enabled {
		if e.hasValue {
			v := e.value.(T)
			c.mu.Unlock()
			return v, nil
		}
		c.mu.Unlock()
		return zero, ErrDisabled
	}

	if e.hasValue && !e.invalid {
		v := e.value.(T)
		needsRefresh := c.staleLocked(e) && !e.refreshing
		if needsRefresh {
			e.refreshing = true
		}
		c.mu.Unlock()
		if needsRefresh {
			refreshAsync(ctx, c, key, fetch)
		}
		return v, nil
	}

	hadValue := e.hasValue
	prev := e.value
	c.mu.Unlock()

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		return fetchAndStore(ctx, c, key, fetch)
	})
	if err != nil {
		if hadValue {
			return prev.(T), err
		}
		return zero, err
	}
	return v.(T), nil
}

// Peek returns the cached value for key without ever starting a fetch.
// The second return reports whether a value is cached at all.
func Peek[T any](c *Cache, key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	e, ok := c.entries[key.String()]
	if !ok || !e.hasValue {
		return zero, false
	}
	return e.value.(T), true
}

// fetchAndStore runs one fetch for a single-value key and records the
// outcome. Runs inside the key's singleflight group.
func fetchAndStore[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (any, error) {
	val, err := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entryLocked(key)
	if err != nil {
		e.lastErr = err
		return nil, err
	}
	e.value = val
	e.hasValue = true
	e.invalid = false
	e.lastErr = nil
	e.fetchedAt = c.clock()
	return val, nil
}

// refreshAsync revalidates a stale entry without blocking the reader.
// The refresh is detached from the triggering request's cancellation.
func refreshAsync[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) {
	bg := context.WithoutCancel(ctx)
	go func() {
		_, _, _ = c.group.Do(key.String(), func() (any, error) {
			v, err := fetchAndStore(bg, c, key, fetch)
			if err != nil {
				logger := domain.LoggerFromContext(bg)
				logger.WarnContext(bg, "background refresh failed",
					"key", key.String(), "error", err)
			}
			return v, err
		})
		c.mu.Lock()
		c.entryLocked(key).refreshing = false
		c.mu.Unlock()
	}()
}
