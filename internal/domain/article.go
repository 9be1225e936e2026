package domain

import (
	"time"
)

// Article is the canonical superset of article fields across views.
// Articles are immutable once fetched. ID is the canonical identity;
// URL is kept as a fallback key for feeds that predate stable IDs.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Image     string    `json:"image"`
	Publisher string    `json:"publisher"`
	Date      time.Time `json:"date"`
	Keyword   string    `json:"keyword"`
	Topic     string    `json:"topic"`
	Genre     string    `json:"genre"`
	Subtitle  string    `json:"subtitle"`
}

// Key returns the identity used for deduplication and like tracking.
func (a Article) Key() string {
	if a.ID != "" {
		return a.ID
	}
	return a.URL
}

// Page is one fetched slice of a feed. Articles preserve server order.
// NextCursor is an opaque token resuming the next page; empty means the
// feed signalled no further pages.
type Page struct {
	Articles   []Article `json:"data"`
	NextCursor string    `json:"next_cursor"`
}

// HasNext reports whether the server signalled another page.
func (p Page) HasNext() bool {
	return p.NextCursor != ""
}

// TopicAll is the synthetic topic prepended to the ranked topic list,
// addressing the aggregate "for you" feed.
const TopicAll = "all"
