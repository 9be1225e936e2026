// Package hermesapi is the HTTP client for the Hermes REST API. It
// translates feed, discovery, like, and identity operations into
// authenticated calls and maps failures onto the domain error taxonomy:
// transport failures and non-2xx responses become *domain.RequestError,
// missing credentials become domain.ErrUnauthenticated before any
// request is sent.
package hermesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/strawberrySword/hermes/internal/datasources"
	"github.com/strawberrySword/hermes/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Client is a Hermes API client. The zero value is not usable; call New.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     datasources.TokenSource
}

var _ datasources.ArticleSource = (*Client)(nil)
var _ datasources.PersonalizedPager = (*Client)(nil)
var _ datasources.RandomArticleFetcher = (*Client)(nil)
var _ datasources.InteractionRecorder = (*Client)(nil)
var _ datasources.LikeService = (*Client)(nil)
var _ datasources.LikedCountFetcher = (*Client)(nil)
var _ datasources.UserDirectory = (*Client)(nil)

// New creates a Hermes API client. tokens may be nil for deployments
// that only use public endpoints.
func New(baseURL string, tokens datasources.TokenSource) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		Tokens:     tokens,
	}
}

// do performs one API request. When authed is set, a bearer token is
// required up front; without one the request is suppressed, not sent.
func (c *Client) do(ctx context.Context, method, path string, authed bool, body, out any) error {
	op := fmt.Sprintf("%s %s", method, path)

	var token string
	if authed {
		if c.Tokens == nil {
			return domain.ErrUnauthenticated
		}
		var err error
		token, err = c.Tokens.BearerToken(ctx)
		if err != nil {
			return err
		}
		if token == "" {
			return domain.ErrUnauthenticated
		}
	}

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &domain.RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &domain.RequestError{Op: op, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// FetchArticles fetches one page of a topic feed. Requires a session;
// unauthenticated requests are not attempted.
func (c *Client) FetchArticles(ctx context.Context, topic, cursor string) (domain.Page, error) {
	path := "/api/articles/" + url.PathEscape(topic)
	if cursor != "" {
		path += "?cursor=" + url.QueryEscape(cursor)
	}

	var page domain.Page
	if err := c.do(ctx, http.MethodGet, path, true, nil, &page); err != nil {
		return domain.Page{}, fmt.Errorf("fetching articles for topic %q: %w", topic, err)
	}
	return page, nil
}

// FetchPersonalized fetches one page of a user's personalized feed.
func (c *Client) FetchPersonalized(ctx context.Context, userID, cursor string) (domain.Page, error) {
	if cursor == "" {
		cursor = "0"
	}
	path := "/api/articles/" + url.PathEscape(userID) + "/" + url.PathEscape(cursor)

	var page domain.Page
	if err := c.do(ctx, http.MethodGet, path, true, nil, &page); err != nil {
		return domain.Page{}, fmt.Errorf("fetching personalized feed: %w", err)
	}
	return page, nil
}

// FetchRandomArticle fetches one random article from the public
// discovery endpoint.
func (c *Client) FetchRandomArticle(ctx context.Context) (domain.Article, error) {
	var article domain.Article
	if err := c.do(ctx, http.MethodGet, "/api/article", false, nil, &article); err != nil {
		return domain.Article{}, fmt.Errorf("fetching random article: %w", err)
	}
	return article, nil
}

// FetchTopics fetches the ranked topic list and prepends the synthetic
// aggregate topic.
func (c *Client) FetchTopics(ctx context.Context) ([]string, error) {
	var ranked []struct {
		Topic string `json:"topic"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/articles/top-topics", true, nil, &ranked); err != nil {
		return nil, fmt.Errorf("fetching topics: %w", err)
	}

	topics := make([]string, 0, len(ranked)+1)
	topics = append(topics, domain.TopicAll)
	for _, t := range ranked {
		topics = append(topics, t.Topic)
	}
	return topics, nil
}

// RecordInteraction records that an article was opened. Callers treat
// this as fire-and-forget telemetry.
func (c *Client) RecordInteraction(ctx context.Context, articleID string) error {
	path := "/api/interactions/" + url.PathEscape(articleID)
	if err := c.do(ctx, http.MethodPost, path, true, nil, nil); err != nil {
		return fmt.Errorf("recording interaction: %w", err)
	}
	return nil
}

// ProxyImageURL builds the image-proxy URL for an external thumbnail.
func (c *Client) ProxyImageURL(raw string) string {
	return c.BaseURL + "/api/proxy?url=" + url.QueryEscape(raw)
}
