package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/strawberrySword/hermes/internal/datasources/mocks"
	"github.com/strawberrySword/hermes/internal/domain"
	"github.com/strawberrySword/hermes/internal/querycache"
)

// fakeStore is an in-memory session record.
type fakeStore struct {
	mu   sync.Mutex
	user *domain.User
}

func (s *fakeStore) LoadSession(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}
	u := *s.user
	return &u, nil
}

func (s *fakeStore) SaveSession(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	return nil
}

func (s *fakeStore) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}

func TestLoginPersistsSession(t *testing.T) {
	users := mocks.NewMockUserDirectory(t)
	users.EXPECT().FetchUser(mock.Anything, "u1").Return(domain.User{UserID: "u1"}, nil).Once()
	store := &fakeStore{}

	m, err := NewManager(context.Background(), users, store, querycache.New())
	require.NoError(t, err)
	require.Nil(t, m.CurrentUser())

	user, err := m.Login(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
	require.NotNil(t, m.CurrentUser())
	assert.Equal(t, "u1", m.CurrentUser().UserID)

	saved, err := store.LoadSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "u1", saved.UserID)
}

func TestSessionRestoredAtStartup(t *testing.T) {
	users := mocks.NewMockUserDirectory(t)
	store := &fakeStore{user: &domain.User{UserID: "u1"}}

	m, err := NewManager(context.Background(), users, store, querycache.New())
	require.NoError(t, err)
	require.NotNil(t, m.CurrentUser())
	assert.Equal(t, "u1", m.CurrentUser().UserID)
}

func TestLoginUnknownUser(t *testing.T) {
	users := mocks.NewMockUserDirectory(t)
	users.EXPECT().FetchUser(mock.Anything, "ghost").Return(domain.User{}, domain.ErrUserNotFound).Once()
	store := &fakeStore{}

	m, err := NewManager(context.Background(), users, store, querycache.New())
	require.NoError(t, err)

	_, err = m.Login(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Nil(t, m.CurrentUser())
}

func TestLoginRandom(t *testing.T) {
	users := mocks.NewMockUserDirectory(t)
	users.EXPECT().FetchRandomUser(mock.Anything).Return(domain.User{UserID: "demo-7"}, nil).Once()
	store := &fakeStore{}

	m, err := NewManager(context.Background(), users, store, querycache.New())
	require.NoError(t, err)

	user, err := m.LoginRandom(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "demo-7", user.UserID)
	require.NotNil(t, m.CurrentUser())
}

func TestLogoutClearsRecordAndInvalidatesUserState(t *testing.T) {
	users := mocks.NewMockUserDirectory(t)
	store := &fakeStore{user: &domain.User{UserID: "u1"}}
	cache := querycache.New()

	m, err := NewManager(context.Background(), users, store, cache)
	require.NoError(t, err)

	// Warm user-scoped cache entries the way the controllers do.
	fetches := map[string]int{}
	warm := func(key querycache.Key) {
		_, err := querycache.Get(context.Background(), cache, key,
			func(ctx context.Context) (string, error) {
				fetches[key.String()]++
				return "cached", nil
			})
		require.NoError(t, err)
	}
	feedKey := querycache.NewKey("articles", "tech")
	likeKey := querycache.NewKey("likes", "u1", "a1")
	warm(feedKey)
	warm(likeKey)
	require.Equal(t, 1, fetches[feedKey.String()])
	require.Equal(t, 1, fetches[likeKey.String()])

	require.NoError(t, m.Logout(context.Background()))
	assert.Nil(t, m.CurrentUser())

	saved, err := store.LoadSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, saved, "persisted record must be cleared")

	// Every user-scoped entry was invalidated: the next reads refetch.
	warm(feedKey)
	warm(likeKey)
	assert.Equal(t, 2, fetches[feedKey.String()])
	assert.Equal(t, 2, fetches[likeKey.String()])
}

func TestSwitchingUsersInvalidatesPreviousUserState(t *testing.T) {
	users := mocks.NewMockUserDirectory(t)
	users.EXPECT().FetchUser(mock.Anything, "u2").Return(domain.User{UserID: "u2"}, nil).Once()
	store := &fakeStore{user: &domain.User{UserID: "u1"}}
	cache := querycache.New()

	m, err := NewManager(context.Background(), users, store, cache)
	require.NoError(t, err)

	likeKey := querycache.NewKey("likes", "u1", "a1")
	fetches := 0
	get := func() {
		_, err := querycache.Get(context.Background(), cache, likeKey,
			func(ctx context.Context) (bool, error) {
				fetches++
				return true, nil
			})
		require.NoError(t, err)
	}
	get()
	require.Equal(t, 1, fetches)

	_, err = m.Login(context.Background(), "u2")
	require.NoError(t, err)

	get()
	assert.Equal(t, 2, fetches, "previous user's entries must not survive a user switch")
}

func TestStaticTokenSource(t *testing.T) {
	token, err := StaticTokenSource("secret").BearerToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", token)

	_, err = StaticTokenSource("").BearerToken(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
