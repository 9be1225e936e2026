// Package session unifies the two identity mechanisms of the original
// client behind one SessionProvider capability: a durable local
// {user_id} record for anonymous-style logins, and an external token
// source for bearer credentials.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/strawberrySword/hermes/internal/datasources"
	"github.com/strawberrySword/hermes/internal/domain"
	"github.com/strawberrySword/hermes/internal/querycache"
)

// Provider exposes the current user identity and login/logout. At most
// one writer mutates the session; any component may read it.
type Provider interface {
	CurrentUser() *domain.User
	Login(ctx context.Context, userID string) (domain.User, error)
	LoginRandom(ctx context.Context) (domain.User, error)
	Logout(ctx context.Context) error
}

var _ Provider = (*Manager)(nil)

// Manager is the store-backed Provider. Logout invalidates every
// user-scoped cache entry so no view renders another user's data.
type Manager struct {
	users datasources.UserDirectory
	store datasources.SessionStore
	cache *querycache.Cache

	mu   sync.RWMutex
	user *domain.User
}

// NewManager restores the persisted session record, if any.
func NewManager(ctx context.Context, users datasources.UserDirectory, store datasources.SessionStore, cache *querycache.Cache) (*Manager, error) {
	user, err := store.LoadSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("restoring session: %w", err)
	}
	return &Manager{
		users: users,
		store: store,
		cache: cache,
		user:  user,
	}, nil
}

// CurrentUser returns the logged-in user, or nil when anonymous.
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// Login resolves the identity against the API and persists it.
func (m *Manager) Login(ctx context.Context, userID string) (domain.User, error) {
	user, err := m.users.FetchUser(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("logging in: %w", err)
	}
	return user, m.activate(ctx, user)
}

// LoginRandom logs in as a random demo identity.
func (m *Manager) LoginRandom(ctx context.Context) (domain.User, error) {
	user, err := m.users.FetchRandomUser(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("logging in with random user: %w", err)
	}
	return user, m.activate(ctx, user)
}

func (m *Manager) activate(ctx context.Context, user domain.User) error {
	if err := m.store.SaveSession(ctx, user); err != nil {
		return err
	}

	m.mu.Lock()
	prev := m.user
	m.user = &user
	m.mu.Unlock()

	if prev != nil && prev.UserID != user.UserID {
		m.invalidateUserScoped(prev.UserID)
	}
	return nil
}

// Logout clears the persisted record and drops the in-memory identity.
// All cache entries scoped to the departing user are invalidated.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	prev := m.user
	m.user = nil
	m.mu.Unlock()

	if err := m.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	if prev != nil {
		m.invalidateUserScoped(prev.UserID)
	}
	return nil
}

func (m *Manager) invalidateUserScoped(userID string) {
	if m.cache == nil {
		return
	}
	m.cache.InvalidatePrefix(querycache.NewKey("articles"))
	m.cache.InvalidatePrefix(querycache.NewKey("likes", userID))
	m.cache.InvalidatePrefix(querycache.NewKey("liked-count", userID))
}
