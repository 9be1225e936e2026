package hermesapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/strawberrySword/hermes/internal/domain"
)

// FetchUser looks up a login identity. The endpoint is public: the
// session record itself is the anonymous fallback credential.
func (c *Client) FetchUser(ctx context.Context, userID string) (domain.User, error) {
	var user domain.User
	path := "/api/user/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, false, nil, &user); err != nil {
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("fetching user: %w", err)
	}
	return user, nil
}

// FetchRandomUser fetches a random demo identity for onboarding.
func (c *Client) FetchRandomUser(ctx context.Context) (domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/api/user/random", false, nil, &user); err != nil {
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("fetching random user: %w", err)
	}
	return user, nil
}
