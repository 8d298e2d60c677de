// Package feed pages through the instance feed and flattens the result.
package feed

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fedisum/summarybot/internal/bot"
	"github.com/fedisum/summarybot/internal/metrics"
	"github.com/fedisum/summarybot/internal/retry"
)

// DefaultPages is how deep one fetch goes into the feed.
const DefaultPages = 5

// errEmptyListing converts an empty page into a retryable failure, matching
// the caller contract that an empty API response is a failed attempt.
var errEmptyListing = errors.New("empty post listing")

// Options select which slice of the feed a deep fetch covers.
type Options struct {
	Community string
	Sort      string
	Listing   string
	SavedOnly bool
}

// Fetcher retrieves a fixed number of feed pages through a retrying caller.
type Fetcher struct {
	client bot.PlatformClient
	caller *retry.Caller
	pages  int
	logger *zap.Logger
}

// New builds a Fetcher. Zero pages falls back to DefaultPages.
func New(client bot.PlatformClient, caller *retry.Caller, pages int, logger *zap.Logger) *Fetcher {
	if pages <= 0 {
		pages = DefaultPages
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{client: client, caller: caller, pages: pages, logger: logger}
}

// FetchDeep fetches pages 1..N in order and concatenates their posts.
// Deleted posts are dropped; in saved-only mode unsaved posts are dropped
// too. A page that exhausts its retries aborts the whole fetch: callers get
// the fatal error, never a partial list.
func (f *Fetcher) FetchDeep(ctx context.Context, opts Options) ([]bot.Post, error) {
	var posts []bot.Post
	for page := 1; page <= f.pages; page++ {
		q := bot.ListQuery{
			Community: opts.Community,
			Sort:      opts.Sort,
			Listing:   opts.Listing,
			Page:      page,
		}
		views, err := retry.Call(ctx, f.caller, "post.list", func(ctx context.Context) ([]bot.PostView, error) {
			views, err := f.client.ListPosts(ctx, q)
			if err != nil {
				return nil, err
			}
			if len(views) == 0 {
				return nil, errEmptyListing
			}
			return views, nil
		})
		if err != nil {
			return nil, fmt.Errorf("fetch feed page %d: %w", page, err)
		}
		metrics.ObserveFeedPage()

		for _, view := range views {
			if view.Post.Deleted {
				continue
			}
			if opts.SavedOnly && !view.Saved {
				continue
			}
			posts = append(posts, view.Post)
		}
		f.logger.Debug("feed page fetched",
			zap.Int("page", page),
			zap.Int("entries", len(views)),
		)
	}
	return posts, nil
}
