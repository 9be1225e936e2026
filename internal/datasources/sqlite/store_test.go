package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strawberrySword/hermes/internal/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "hermes.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSessionRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	user, err := store.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, user, "fresh store holds no session")

	require.NoError(t, store.SaveSession(ctx, domain.User{UserID: "u1"}))
	user, err = store.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.UserID)

	// Saving again replaces the single record.
	require.NoError(t, store.SaveSession(ctx, domain.User{UserID: "u2"}))
	user, err = store.LoadSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u2", user.UserID)

	require.NoError(t, store.ClearSession(ctx))
	user, err = store.LoadSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestArticleSnapshotPreservesFetchOrder(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	date := time.Date(2025, 5, 20, 8, 30, 0, 0, time.UTC)

	require.NoError(t, store.SaveArticles(ctx, "tech", []domain.Article{
		{ID: "a1", Title: "First", URL: "https://example.com/a1", Publisher: "Example", Date: date},
		{ID: "a2", Title: "Second", URL: "https://example.com/a2", Date: date},
	}))
	require.NoError(t, store.SaveArticles(ctx, "tech", []domain.Article{
		{ID: "a3", Title: "Third", URL: "https://example.com/a3", Date: date},
	}))

	articles, err := store.ListArticles(ctx, "tech", 0)
	require.NoError(t, err)
	require.Len(t, articles, 3)
	assert.Equal(t, "a1", articles[0].ID)
	assert.Equal(t, "a2", articles[1].ID)
	assert.Equal(t, "a3", articles[2].ID)
	assert.Equal(t, "First", articles[0].Title)
	assert.Equal(t, "Example", articles[0].Publisher)
	assert.Equal(t, "tech", articles[0].Topic)
	assert.True(t, articles[0].Date.Equal(date))
}

func TestArticleSnapshotLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveArticles(ctx, "tech", []domain.Article{
		{ID: "a1", Title: "First", URL: "https://example.com/a1"},
		{ID: "a2", Title: "Second", URL: "https://example.com/a2"},
		{ID: "a3", Title: "Third", URL: "https://example.com/a3"},
	}))

	articles, err := store.ListArticles(ctx, "tech", 2)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "a1", articles[0].ID)
	assert.Equal(t, "a2", articles[1].ID)
}

func TestArticleSnapshotDeduplicatesRefetches(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveArticles(ctx, "tech", []domain.Article{
		{ID: "a1", Title: "First", URL: "https://example.com/a1"},
	}))
	require.NoError(t, store.SaveArticles(ctx, "tech", []domain.Article{
		{ID: "a1", Title: "First, updated", URL: "https://example.com/a1"},
	}))

	articles, err := store.ListArticles(ctx, "tech", 0)
	require.NoError(t, err)
	require.Len(t, articles, 1, "a refetched article keeps one row per topic")
	assert.Equal(t, "First, updated", articles[0].Title)
}

func TestArticleSnapshotScopedByTopic(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveArticles(ctx, "tech", []domain.Article{
		{ID: "a1", Title: "Tech", URL: "https://example.com/a1"},
	}))
	require.NoError(t, store.SaveArticles(ctx, "sports", []domain.Article{
		{ID: "a1", Title: "Sports", URL: "https://example.com/a1"},
	}))

	tech, err := store.ListArticles(ctx, "tech", 0)
	require.NoError(t, err)
	require.Len(t, tech, 1)
	assert.Equal(t, "Tech", tech[0].Title)

	sports, err := store.ListArticles(ctx, "sports", 0)
	require.NoError(t, err)
	require.Len(t, sports, 1)
	assert.Equal(t, "Sports", sports[0].Title)
}

func TestCursorHistory(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveCursor(ctx, "tech", "p2"))
	require.NoError(t, store.SaveCursor(ctx, "tech", "p3"))
	require.NoError(t, store.SaveCursor(ctx, "tech", "p2"), "duplicate save is a no-op")
	require.NoError(t, store.SaveCursor(ctx, "sports", "s2"))

	cursors, err := store.ListCursors(ctx, "tech")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2", "p3"}, cursors)

	cursors, err = store.ListCursors(ctx, "sports")
	require.NoError(t, err)
	assert.Equal(t, []string{"s2"}, cursors)

	cursors, err = store.ListCursors(ctx, "news")
	require.NoError(t, err)
	assert.Empty(t, cursors)
}
