package datasources

import (
	"context"

	"github.com/strawberrySword/hermes/internal/domain"
)

// ArticlePager fetches one page of a topic-scoped feed. An empty cursor
// requests the first page. Topic may be domain.TopicAll for the
// aggregate feed.
type ArticlePager interface {
	FetchArticles(ctx context.Context, topic, cursor string) (domain.Page, error)
}

// PersonalizedPager fetches one page of a user's personalized feed.
type PersonalizedPager interface {
	FetchPersonalized(ctx context.Context, userID, cursor string) (domain.Page, error)
}

// RandomArticleFetcher fetches a single random article. This is a
// public endpoint and needs no credential.
type RandomArticleFetcher interface {
	FetchRandomArticle(ctx context.Context) (domain.Article, error)
}

// TopicsFetcher fetches the ranked topic list, with the synthetic
// domain.TopicAll entry prepended.
type TopicsFetcher interface {
	FetchTopics(ctx context.Context) ([]string, error)
}

// InteractionRecorder records that an article was opened. Recording is
// non-critical telemetry: callers log failures and move on.
type InteractionRecorder interface {
	RecordInteraction(ctx context.Context, articleID string) error
}

// ArticleSource combines everything the feed controller reads.
type ArticleSource interface {
	ArticlePager
	TopicsFetcher
}
