// Package discovery drives the swipe-based cold-start flow: one random
// article at a time, accept/reject gestures, and a liked-count gate
// before the user may move on to the main feed.
package discovery

import (
	"context"
	"fmt"
	"sync"

	"github.com/strawberrySword/hermes/internal/datasources"
	"github.com/strawberrySword/hermes/internal/domain"
	"github.com/strawberrySword/hermes/internal/querycache"
	"github.com/strawberrySword/hermes/internal/session"
)

// Direction is a swipe gesture.
type Direction string

const (
	Right Direction = "right"
	Left  Direction = "left"
	Up    Direction = "up"
	Down  Direction = "down"
)

// DefaultMinLikes is how many accepted articles unlock the feed.
const DefaultMinLikes = 5

var randomKey = querycache.NewKey("articles", "random")

// Source is everything the controller needs from the API.
type Source interface {
	datasources.RandomArticleFetcher
	datasources.InteractionRecorder
	datasources.LikedCountFetcher
}

// Controller presents random unseen articles and accumulates the
// server-derived liked count. After each accepted swipe the count is
// re-queried rather than incremented locally, so the gate always
// reflects server state.
type Controller struct {
	cache    *querycache.Cache
	source   Source
	sessions session.Provider
	minLikes int

	mu         sync.Mutex
	likedCount int
	counted    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithMinLikes overrides the liked-count threshold.
func WithMinLikes(n int) Option {
	return func(c *Controller) { c.minLikes = n }
}

func New(cache *querycache.Cache, source Source, sessions session.Provider, opts ...Option) *Controller {
	c := &Controller{
		cache:    cache,
		source:   source,
		sessions: sessions,
		minLikes: DefaultMinLikes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the article being shown, fetching a random one if
// none is cached. The endpoint is public, so no session is required to
// browse.
func (c *Controller) Current(ctx context.Context) (domain.Article, error) {
	article, err := querycache.Get(ctx, c.cache, randomKey, c.source.FetchRandomArticle)
	if err != nil {
		return domain.Article{}, fmt.Errorf("fetching random article: %w", err)
	}
	return article, nil
}

// Swipe applies a gesture to the shown article. Right accepts: the open
// interaction is recorded, the liked count is refreshed from the
// server, and a new article is fetched. Left rejects: a new article is
// fetched without recording. Up and down are invalid input and change
// nothing.
func (c *Controller) Swipe(ctx context.Context, dir Direction) (domain.Article, error) {
	switch dir {
	case Right:
		c.accept(ctx)
	case Left:
		// Rejected: nothing to record.
	default:
		return domain.Article{}, domain.ErrInvalidSwipe
	}

	c.cache.Invalidate(randomKey)
	return c.Current(ctx)
}

// accept records the interaction and refreshes the liked count.
// Recording is telemetry: failures are logged, never surfaced. Only an
// article actually being shown can be accepted; with nothing on screen
// the gesture records nothing.
func (c *Controller) accept(ctx context.Context) {
	logger := domain.LoggerFromContext(ctx)

	article, shown := querycache.Peek[domain.Article](c.cache, randomKey)
	if !shown {
		logger.WarnContext(ctx, "no article shown to accept")
		return
	}

	if err := c.source.RecordInteraction(ctx, article.Key()); err != nil {
		logger.WarnContext(ctx, "failed to record interaction",
			"article_id", article.Key(), "error", err)
	}

	c.refreshLikedCount(ctx)
}

// refreshLikedCount re-queries the server-derived count. On failure the
// last known count is kept.
func (c *Controller) refreshLikedCount(ctx context.Context) {
	user := c.sessions.CurrentUser()
	if user == nil {
		return
	}

	count, err := c.source.LikedCount(ctx, user.UserID)
	if err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.WarnContext(ctx, "failed to refresh liked count", "error", err)
		return
	}

	c.mu.Lock()
	c.likedCount = count
	c.counted = true
	c.mu.Unlock()
}

// LikedCount returns the last server-derived liked count, querying it
// on first use so a returning user resumes where they left off.
func (c *Controller) LikedCount(ctx context.Context) int {
	c.mu.Lock()
	counted := c.counted
	count := c.likedCount
	c.mu.Unlock()
	if counted {
		return count
	}

	c.refreshLikedCount(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.likedCount
}

// CanStartReading reports whether the liked-count gate is open.
func (c *Controller) CanStartReading(ctx context.Context) bool {
	return c.LikedCount(ctx) >= c.minLikes
}

// Remaining returns how many more likes open the gate; the disabled
// "Start Reading" affordance explains itself with this.
func (c *Controller) Remaining(ctx context.Context) int {
	remaining := c.minLikes - c.LikedCount(ctx)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// StartReading permits the transition into the main feed, or explains
// why not.
func (c *Controller) StartReading(ctx context.Context) error {
	if !c.CanStartReading(ctx) {
		return fmt.Errorf("%w: %d more needed", domain.ErrDiscoveryIncomplete, c.Remaining(ctx))
	}
	return nil
}
