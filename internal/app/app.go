package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/strawberrySword/hermes/internal/datasources/hermesapi"
	"github.com/strawberrySword/hermes/internal/datasources/sqlite"
	"github.com/strawberrySword/hermes/internal/discovery"
	"github.com/strawberrySword/hermes/internal/feed"
	"github.com/strawberrySword/hermes/internal/like"
	"github.com/strawberrySword/hermes/internal/querycache"
	"github.com/strawberrySword/hermes/internal/session"
)

// Engine bundles the wired client components: one shared query cache,
// the API client, local persistence, and the view controllers.
type Engine struct {
	Cache     *querycache.Cache
	API       *hermesapi.Client
	Store     *sqlite.Store
	Sessions  *session.Manager
	Feed      *feed.Controller
	Discovery *discovery.Controller
	Likes     *like.Toggle
}

// Setup wires the engine from the environment. HERMES_API_BASE_URL is
// required; everything else has defaults.
func Setup(ctx context.Context) (*Engine, error) {
	baseURL := MustGetEnvAsString(ctx, "HERMES_API_BASE_URL")
	tokens := session.StaticTokenSource(GetEnvAsStringDefault("HERMES_BEARER_TOKEN", ""))

	dbPath := GetEnvAsStringDefault("HERMES_DATA_DIR", "")
	if dbPath == "" {
		dbPath = filepath.Join(xdg.DataHome, "hermes")
	}

	store, err := sqlite.Open(ctx, filepath.Join(dbPath, "hermes.db"))
	if err != nil {
		return nil, fmt.Errorf("opening local store: %w", err)
	}

	cache := querycache.New(
		querycache.WithStaleAfter(GetEnvAsDurationDefault(ctx, "CACHE_STALE_AFTER", querycache.DefaultStaleAfter)),
	)
	api := hermesapi.New(baseURL, tokens)

	sessions, err := session.NewManager(ctx, api, store, cache)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("setting up session manager: %w", err)
	}

	return &Engine{
		Cache:    cache,
		API:      api,
		Store:    store,
		Sessions: sessions,
		Feed: feed.New(cache, api, sessions,
			feed.WithPersonalized(api),
			feed.WithSnapshots(store),
			feed.WithCursorHistory(store),
			feed.WithMaxTopics(GetEnvAsIntDefault(ctx, "FEED_MAX_TOPICS", feed.DefaultMaxTopics)),
		),
		Discovery: discovery.New(cache, api, sessions,
			discovery.WithMinLikes(GetEnvAsIntDefault(ctx, "DISCOVERY_MIN_LIKES", discovery.DefaultMinLikes)),
		),
		Likes: like.New(cache, api, sessions),
	}, nil
}

// Close releases the engine's local resources.
func (e *Engine) Close() error {
	if e.Store != nil {
		return e.Store.Close()
	}
	return nil
}
