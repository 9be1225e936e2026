package datasources

import (
	"context"
)

// LikeStatusFetcher reports whether a user has liked an article. A
// server 404 means "not liked", not an error.
type LikeStatusFetcher interface {
	LikeStatus(ctx context.Context, articleID, userID string) (bool, error)
}

// LikeSetter sets or clears a like. Failures wrap domain.ErrLikeUpdate.
type LikeSetter interface {
	SetLike(ctx context.Context, articleID, userID string, liked bool) error
}

// LikedCountFetcher returns the server-derived number of articles the
// user has liked. The discovery flow re-queries this after each accepted
// swipe rather than incrementing locally, so the client never drifts
// from server state.
type LikedCountFetcher interface {
	LikedCount(ctx context.Context, userID string) (int, error)
}

// LikeService combines the like operations used by the toggle.
type LikeService interface {
	LikeStatusFetcher
	LikeSetter
}
