package bot

import (
	"context"
	"time"
)

// PlatformClient talks to the federated instance. Implementations must treat
// an empty or zero-valued API response as an error so retry policies see it
// as a failed attempt.
type PlatformClient interface {
	Login(ctx context.Context, username, password string) error
	ListPosts(ctx context.Context, q ListQuery) ([]PostView, error)
	CreateComment(ctx context.Context, postID int64, body string) error
}

// DedupStore is the durable record of post ids already handled. Add must
// flush before returning so a crash mid-cycle does not replay.
type DedupStore interface {
	Contains(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, id string) error
}

// Blocklist answers whether a registrable domain is never worth summarizing.
type Blocklist interface {
	Contains(domain string) bool
}

// ArticleFetcher downloads a linked page and applies content-type and
// encoding policy. Network failures are returned as errors and are not
// retried by callers.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (FetchResult, error)
}

// Scraper extracts the readable article from raw HTML.
type Scraper interface {
	Scrape(pageURL, html string) (Article, error)
}

// Summarizer condenses article text. It may fail on degenerate input.
type Summarizer interface {
	Summarize(body string) (Summary, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}
