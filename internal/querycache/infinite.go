package querycache

import (
	"context"

	"github.com/strawberrySword/hermes/internal/domain"
)

// Page is one fetched slice of an infinite query, in server order, plus
// the opaque cursor resuming the next page. An empty cursor means the
// query signalled no further pages.
type Page[T any] struct {
	Items      []T
	NextCursor string
}

// PagedResult is the current state of an infinite query: every fetched
// page in fetch order plus pagination flags.
type PagedResult[T any] struct {
	Pages    []Page[T]
	HasNext  bool
	Fetching bool
}

// Items flattens all fetched pages, preserving fetch order.
func (r PagedResult[T]) Items() []T {
	var items []T
	for _, p := range r.Pages {
		items = append(items, p.Items...)
	}
	return items
}

// FetchPageFunc fetches one page starting at cursor.
type FetchPageFunc[T any] func(ctx context.Context, cursor string) (Page[T], error)

// GetInfinite returns the fetched pages for key, fetching the first page
// with initialCursor if nothing is cached yet. A stale entry is served
// immediately while one background refresh restarts the query from its
// first page. An invalidated entry is refetched synchronously, also from
// the first page; on failure the previously fetched pages are returned
// together with the error.
func GetInfinite[T any](ctx context.Context, c *Cache, key Key, initialCursor string, fetch FetchPageFunc[T]) (PagedResult[T], error) {
	c.mu.Lock()
	e := c.entryLocked(key)

	if !e.enabled {
		res := pagedResultLocked[T](e)
		c.mu.Unlock()
		if len(res.Pages) == 0 {
			return res, ErrDisabled
		}
		return res, nil
	}

	if e.pageCount > 0 && !e.invalid {
		res := pagedResultLocked[T](e)
		needsRefresh := c.staleLocked(e) && !e.refreshing && !e.fetching
		if needsRefresh {
			e.refreshing = true
		}
		c.mu.Unlock()
		if needsRefresh {
			refreshInfiniteAsync(ctx, c, key, initialCursor, fetch)
		}
		return res, nil
	}

	if e.fetching || e.refreshing {
		// A fetch is already under way for this key; within one key
		// fetches are strictly sequential.
		res := pagedResultLocked[T](e)
		c.mu.Unlock()
		return res, nil
	}

	e.fetching = true
	prev := pagedResultLocked[T](e)
	c.mu.Unlock()

	page, err := fetch(ctx, initialCursor)

	c.mu.Lock()
	defer c.mu.Unlock()
	e = c.entryLocked(key)
	e.fetching = false
	if err != nil {
		e.lastErr = err
		return prev, err
	}
	storePagesLocked(c, e, []Page[T]{page})
	return pagedResultLocked[T](e), nil
}

// FetchNext appends the next page to an infinite query, resuming from
// the cursor of the last fetched page. It is a no-op when the query has
// not been started, no further page was signalled, the key is disabled,
// or a fetch for the key is already in flight, including a background
// refresh: a refresh replaces the page list, and a page fetched from a
// pre-refresh cursor must never land on the refreshed pages.
func FetchNext[T any](ctx context.Context, c *Cache, key Key, fetch FetchPageFunc[T]) (PagedResult[T], error) {
	c.mu.Lock()
	e := c.entryLocked(key)
	if !e.enabled || e.fetching || e.refreshing || !e.hasNext || e.pageCount == 0 {
		res := pagedResultLocked[T](e)
		c.mu.Unlock()
		return res, nil
	}
	e.fetching = true
	cursor := e.nextCursor
	prev := pagedResultLocked[T](e)
	c.mu.Unlock()

	page, err := fetch(ctx, cursor)

	c.mu.Lock()
	defer c.mu.Unlock()
	e = c.entryLocked(key)
	e.fetching = false
	if err != nil {
		e.lastErr = err
		return prev, err
	}
	pages := append(e.pages.([]Page[T]), page)
	storePagesLocked(c, e, pages)
	return pagedResultLocked[T](e), nil
}

// PeekInfinite returns whatever pages are cached for key without ever
// starting a fetch. Back-navigation reads through this: already-seen
// pages are re-derived from the cache, never re-fetched.
func PeekInfinite[T any](c *Cache, key Key) PagedResult[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.String()]
	if !ok {
		return PagedResult[T]{}
	}
	return pagedResultLocked[T](e)
}

// refreshInfiniteAsync revalidates a stale infinite query without
// blocking the reader. The query restarts from its first page; on
// success the refetched page replaces the buffered pages. Failure keeps
// them and records the error.
func refreshInfiniteAsync[T any](ctx context.Context, c *Cache, key Key, initialCursor string, fetch FetchPageFunc[T]) {
	bg := context.WithoutCancel(ctx)
	go func() {
		_, _, _ = c.group.Do(key.String(), func() (any, error) {
			page, err := fetch(bg, initialCursor)

			c.mu.Lock()
			defer c.mu.Unlock()
			e := c.entryLocked(key)
			if err != nil {
				e.lastErr = err
				logger := domain.LoggerFromContext(bg)
				logger.WarnContext(bg, "background refresh failed",
					"key", key.String(), "error", err)
				return nil, err
			}
			storePagesLocked(c, e, []Page[T]{page})
			return nil, nil
		})
		c.mu.Lock()
		c.entryLocked(key).refreshing = false
		c.mu.Unlock()
	}()
}

func pagedResultLocked[T any](e *entry) PagedResult[T] {
	res := PagedResult[T]{
		HasNext:  e.hasNext,
		Fetching: e.fetching,
	}
	if e.pageCount > 0 {
		pages := e.pages.([]Page[T])
		res.Pages = make([]Page[T], len(pages))
		copy(res.Pages, pages)
	}
	return res
}

func storePagesLocked[T any](c *Cache, e *entry, pages []Page[T]) {
	e.pages = pages
	e.pageCount = len(pages)
	if len(pages) > 0 {
		last := pages[len(pages)-1]
		e.nextCursor = last.NextCursor
		e.hasNext = last.NextCursor != ""
	}
	e.invalid = false
	e.lastErr = nil
	e.fetchedAt = c.clock()
}
