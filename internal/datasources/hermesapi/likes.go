package hermesapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/strawberrySword/hermes/internal/domain"
)

func likePath(articleID, userID string) string {
	return "/api/articles/like/" + url.PathEscape(articleID) + "/" + url.PathEscape(userID)
}

// LikeStatus reports whether the user has liked the article. A 404 from
// the server means the like record does not exist, i.e. not liked.
func (c *Client) LikeStatus(ctx context.Context, articleID, userID string) (bool, error) {
	err := c.do(ctx, http.MethodGet, likePath(articleID, userID), true, nil, nil)
	if err != nil {
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("fetching like status: %w", err)
	}
	return true, nil
}

// SetLike creates or removes the like record for (articleID, userID).
func (c *Client) SetLike(ctx context.Context, articleID, userID string, liked bool) error {
	method := http.MethodPost
	if !liked {
		method = http.MethodDelete
	}
	if err := c.do(ctx, method, likePath(articleID, userID), true, nil, nil); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrLikeUpdate, err)
	}
	return nil
}

// LikedCount returns the server-derived number of liked articles for
// the user.
func (c *Client) LikedCount(ctx context.Context, userID string) (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	path := "/api/articles/like/count/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, true, nil, &result); err != nil {
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) && reqErr.Status == http.StatusNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("fetching liked count: %w", err)
	}
	return result.Count, nil
}
