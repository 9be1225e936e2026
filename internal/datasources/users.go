package datasources

import (
	"context"

	"github.com/strawberrySword/hermes/internal/domain"
)

// UserFetcher looks up a login identity by ID. Returns
// domain.ErrUserNotFound when no such user exists.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) (domain.User, error)
}

// RandomUserFetcher fetches a random demo identity for onboarding.
type RandomUserFetcher interface {
	FetchRandomUser(ctx context.Context) (domain.User, error)
}

// UserDirectory combines the identity lookups used by the session layer.
type UserDirectory interface {
	UserFetcher
	RandomUserFetcher
}

// TokenSource supplies the bearer credential attached to authenticated
// requests. Implementations wrap whatever identity provider the
// deployment uses; domain.ErrUnauthenticated means no credential is
// currently obtainable.
type TokenSource interface {
	BearerToken(ctx context.Context) (string, error)
}
