package session

import (
	"context"

	"github.com/strawberrySword/hermes/internal/datasources"
	"github.com/strawberrySword/hermes/internal/domain"
)

// StaticTokenSource serves a fixed bearer token, typically taken from
// the environment after the deployment's identity provider issued it.
// An empty token means unauthenticated.
type StaticTokenSource string

var _ datasources.TokenSource = StaticTokenSource("")

func (s StaticTokenSource) BearerToken(ctx context.Context) (string, error) {
	if s == "" {
		return "", domain.ErrUnauthenticated
	}
	return string(s), nil
}
