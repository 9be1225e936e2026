package datasources

import (
	"context"

	"github.com/strawberrySword/hermes/internal/domain"
)

// SessionStore persists the logged-in user record across restarts.
// LoadSession returns nil when no record exists.
type SessionStore interface {
	LoadSession(ctx context.Context) (*domain.User, error)
	SaveSession(ctx context.Context, user domain.User) error
	ClearSession(ctx context.Context) error
}

// ArticleSnapshotStore keeps local copies of fetched feed pages, serving
// offline reads and the RSS export.
type ArticleSnapshotStore interface {
	SaveArticles(ctx context.Context, topic string, articles []domain.Article) error
	ListArticles(ctx context.Context, topic string, limit int) ([]domain.Article, error)
}

// CursorHistoryStore records the cursors of pages already seen per
// topic, in fetch order, so back-navigation survives restarts.
type CursorHistoryStore interface {
	SaveCursor(ctx context.Context, topic, cursor string) error
	ListCursors(ctx context.Context, topic string) ([]string, error)
}

// LocalStore combines all client-local persistence.
type LocalStore interface {
	SessionStore
	ArticleSnapshotStore
	CursorHistoryStore
}
