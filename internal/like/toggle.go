// Package like is the per-article like/unlike affordance. The toggle is
// transactional: displayed state flips only after the server confirms
// the mutation, so a failed update can never leave the client drifted
// from server state.
package like

import (
	"context"
	"fmt"

	"github.com/strawberrySword/hermes/internal/datasources"
	"github.com/strawberrySword/hermes/internal/domain"
	"github.com/strawberrySword/hermes/internal/querycache"
	"github.com/strawberrySword/hermes/internal/session"
)

// Toggle reconciles per-article like state against the server through
// the shared query cache.
type Toggle struct {
	cache    *querycache.Cache
	likes    datasources.LikeService
	sessions session.Provider
}

func New(cache *querycache.Cache, likes datasources.LikeService, sessions session.Provider) *Toggle {
	return &Toggle{
		cache:    cache,
		likes:    likes,
		sessions: sessions,
	}
}

func statusKey(userID, articleID string) querycache.Key {
	return querycache.NewKey("likes", userID, articleID)
}

// Status returns whether the current user has liked the article. An
// anonymous user has liked nothing. A missing like record on the server
// (404) reads as false, not as an error.
func (t *Toggle) Status(ctx context.Context, articleID string) (bool, error) {
	user := t.sessions.CurrentUser()
	if user == nil {
		return false, nil
	}

	liked, err := querycache.Get(ctx, t.cache, statusKey(user.UserID, articleID),
		func(ctx context.Context) (bool, error) {
			return t.likes.LikeStatus(ctx, articleID, user.UserID)
		})
	if err != nil {
		return false, fmt.Errorf("reading like status: %w", err)
	}
	return liked, nil
}

// Toggle flips the like state for the article and returns the new
// state. The mutation is issued first; on failure the cached state is
// left untouched and the error surfaces. On success the like entry and
// the user's feed entries are invalidated, so the next render reflects
// server-confirmed state.
func (t *Toggle) Toggle(ctx context.Context, articleID string) (bool, error) {
	user := t.sessions.CurrentUser()
	if user == nil {
		return false, domain.ErrUnauthenticated
	}

	current, err := t.Status(ctx, articleID)
	if err != nil {
		return false, err
	}
	target := !current

	if err := t.likes.SetLike(ctx, articleID, user.UserID, target); err != nil {
		return current, err
	}

	t.cache.Invalidate(statusKey(user.UserID, articleID))
	t.cache.InvalidatePrefix(querycache.NewKey("articles"))
	return target, nil
}
