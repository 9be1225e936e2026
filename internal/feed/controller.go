// Package feed drives the "for you" aggregate feed and the per-topic
// strips: one paginated cache entry per topic, scroll-driven prefetch
// near the end of buffered content, and index-based back-navigation
// over already-fetched pages.
package feed

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/strawberrySword/hermes/internal/datasources"
	"github.com/strawberrySword/hermes/internal/domain"
	"github.com/strawberrySword/hermes/internal/querycache"
	"github.com/strawberrySword/hermes/internal/session"
)

// ScrollFetchThreshold is how close to the end of buffered content, in
// pixels, a scroll position must be before the next page is requested.
const ScrollFetchThreshold = 5

// DefaultMaxTopics bounds how many ranked topics get their own strip,
// not counting the synthetic aggregate topic.
const DefaultMaxTopics = 6

// Controller orchestrates topic feeds against a shared query cache.
type Controller struct {
	cache        *querycache.Cache
	source       datasources.ArticleSource
	sessions     session.Provider
	personalized datasources.PersonalizedPager
	snapshots    datasources.ArticleSnapshotStore
	cursors      datasources.CursorHistoryStore
	maxTopics    int

	mu        sync.Mutex
	pageIndex map[string]int
}

// Option configures a Controller.
type Option func(*Controller)

// WithSnapshots persists fetched pages to a local store.
func WithSnapshots(store datasources.ArticleSnapshotStore) Option {
	return func(c *Controller) { c.snapshots = store }
}

// WithCursorHistory persists seen cursors per topic.
func WithCursorHistory(store datasources.CursorHistoryStore) Option {
	return func(c *Controller) { c.cursors = store }
}

// WithPersonalized serves the aggregate strip from the user's
// personalized feed instead of the shared aggregate endpoint.
func WithPersonalized(pager datasources.PersonalizedPager) Option {
	return func(c *Controller) { c.personalized = pager }
}

// WithMaxTopics overrides the per-strip topic bound.
func WithMaxTopics(n int) Option {
	return func(c *Controller) { c.maxTopics = n }
}

func New(cache *querycache.Cache, source datasources.ArticleSource, sessions session.Provider, opts ...Option) *Controller {
	c := &Controller{
		cache:     cache,
		source:    source,
		sessions:  sessions,
		maxTopics: DefaultMaxTopics,
		pageIndex: map[string]int{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func topicKey(topic string) querycache.Key {
	return querycache.NewKey("articles", topic)
}

var topicsKey = querycache.NewKey("topics")

// Topics returns the topics the feed should render: the synthetic
// aggregate topic plus up to maxTopics ranked ones. A user with no
// ranked topics yet gets domain.ErrNeedsDiscovery, redirecting into the
// discovery flow.
func (c *Controller) Topics(ctx context.Context) ([]string, error) {
	c.gate(topicsKey)

	topics, err := querycache.Get(ctx, c.cache, topicsKey, c.source.FetchTopics)
	if err != nil {
		return nil, fmt.Errorf("fetching topic list: %w", err)
	}

	if len(topics) <= 1 {
		// Only the synthetic aggregate topic: no interaction history.
		return nil, domain.ErrNeedsDiscovery
	}
	if len(topics) > c.maxTopics+1 {
		topics = topics[:c.maxTopics+1]
	}
	return topics, nil
}

// Articles returns the fetched pages for a topic, starting the feed on
// first access. Before a session exists the key is gated: no network
// call is made and cached content, if any, is served.
func (c *Controller) Articles(ctx context.Context, topic string) (querycache.PagedResult[domain.Article], error) {
	key := topicKey(topic)
	c.gate(key)
	return querycache.GetInfinite(ctx, c.cache, key, "", c.fetchPage(topic))
}

// HandleScroll reacts to a strip's scroll position. Within
// ScrollFetchThreshold pixels of the end of buffered content it
// requests the next page; the cache guarantees this is a no-op while a
// fetch is in flight or once the feed is exhausted.
func (c *Controller) HandleScroll(ctx context.Context, topic string, distanceToEnd float64) error {
	if distanceToEnd > ScrollFetchThreshold {
		return nil
	}
	_, err := querycache.FetchNext(ctx, c.cache, topicKey(topic), c.fetchPage(topic))
	if err != nil {
		return fmt.Errorf("fetching next page for topic %q: %w", topic, err)
	}
	return nil
}

// NextPage advances the topic's page index, fetching the next page if
// it is not buffered yet, and returns the articles of the new current
// page.
func (c *Controller) NextPage(ctx context.Context, topic string) ([]domain.Article, error) {
	res, err := c.Articles(ctx, topic)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	idx := c.pageIndex[topic]
	c.mu.Unlock()

	if idx+1 >= len(res.Pages) {
		res, err = querycache.FetchNext(ctx, c.cache, topicKey(topic), c.fetchPage(topic))
		if err != nil {
			return nil, fmt.Errorf("fetching next page for topic %q: %w", topic, err)
		}
	}

	// The entry may have restarted from its first page since the index
	// was recorded (invalidation, user switch). Clamp onto the rebuilt
	// page list before advancing.
	if idx >= len(res.Pages) {
		idx = len(res.Pages) - 1
	} else if idx+1 < len(res.Pages) {
		idx++
	}
	if idx < 0 {
		idx = 0
	}

	c.mu.Lock()
	c.pageIndex[topic] = idx
	c.mu.Unlock()

	if idx >= len(res.Pages) {
		return nil, nil
	}
	return res.Pages[idx].Items, nil
}

// PrevPage steps the topic's page index back over already-fetched
// pages. It never fetches.
func (c *Controller) PrevPage(topic string) []domain.Article {
	c.mu.Lock()
	idx := c.pageIndex[topic]
	if idx > 0 {
		idx--
	}
	c.pageIndex[topic] = idx
	c.mu.Unlock()

	res := querycache.PeekInfinite[domain.Article](c.cache, topicKey(topic))
	if idx >= len(res.Pages) {
		return nil
	}
	return res.Pages[idx].Items
}

// CurrentPage returns the articles at the topic's page index, from
// cached pages only.
func (c *Controller) CurrentPage(topic string) []domain.Article {
	c.mu.Lock()
	idx := c.pageIndex[topic]
	c.mu.Unlock()

	res := querycache.PeekInfinite[domain.Article](c.cache, topicKey(topic))
	if idx >= len(res.Pages) {
		return nil
	}
	return res.Pages[idx].Items
}

// History returns the persisted cursor trail for a topic, oldest first.
// Without a cursor store it returns nothing.
func (c *Controller) History(ctx context.Context, topic string) ([]string, error) {
	if c.cursors == nil {
		return nil, nil
	}
	return c.cursors.ListCursors(ctx, topic)
}

// Prefetch warms every topic strip concurrently. Fetches for different
// keys proceed in parallel; within one key they stay sequential.
func (c *Controller) Prefetch(ctx context.Context) error {
	topics, err := c.Topics(ctx)
	if err != nil {
		return err
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	for _, topic := range topics {
		grp.Go(func() error {
			_, err := c.Articles(grpCtx, topic)
			return err
		})
	}
	return grp.Wait()
}

// gate suppresses fetching for a key until authentication is ready.
func (c *Controller) gate(key querycache.Key) {
	c.cache.SetEnabled(key, c.sessions.CurrentUser() != nil)
}

// fetchPage adapts the API pager to the cache's page shape, and
// snapshots what it fetched for offline reads and back-navigation.
func (c *Controller) fetchPage(topic string) querycache.FetchPageFunc[domain.Article] {
	return func(ctx context.Context, cursor string) (querycache.Page[domain.Article], error) {
		page, err := c.fetchRemote(ctx, topic, cursor)
		if err != nil {
			return querycache.Page[domain.Article]{}, err
		}

		logger := domain.LoggerFromContext(ctx)
		if c.snapshots != nil {
			if err := c.snapshots.SaveArticles(ctx, topic, page.Articles); err != nil {
				logger.WarnContext(ctx, "failed to snapshot fetched page",
					"topic", topic, "error", err)
			}
		}
		if c.cursors != nil && page.NextCursor != "" {
			if err := c.cursors.SaveCursor(ctx, topic, page.NextCursor); err != nil {
				logger.WarnContext(ctx, "failed to record cursor",
					"topic", topic, "error", err)
			}
		}

		return querycache.Page[domain.Article]{
			Items:      page.Articles,
			NextCursor: page.NextCursor,
		}, nil
	}
}

// fetchRemote picks the endpoint for a topic: the aggregate strip comes
// from the logged-in user's personalized feed when a pager is wired,
// every other strip from the topic endpoint.
func (c *Controller) fetchRemote(ctx context.Context, topic, cursor string) (domain.Page, error) {
	if topic == domain.TopicAll && c.personalized != nil {
		if user := c.sessions.CurrentUser(); user != nil {
			return c.personalized.FetchPersonalized(ctx, user.UserID, cursor)
		}
	}
	return c.source.FetchArticles(ctx, topic, cursor)
}
