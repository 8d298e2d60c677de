// Package pipeline runs the summarize-and-comment cycle end to end: list the
// feed, filter posts, fetch and condense linked articles, and publish the
// results. One Pipeline instance is reused across cycles.
package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/fedisum/summarybot/internal/blocklist"
	"github.com/fedisum/summarybot/internal/bot"
	"github.com/fedisum/summarybot/internal/comment"
	"github.com/fedisum/summarybot/internal/feed"
	"github.com/fedisum/summarybot/internal/gate"
	"github.com/fedisum/summarybot/internal/metrics"
	"github.com/fedisum/summarybot/internal/retry"
	"github.com/fedisum/summarybot/internal/scrape"
)

// Lister abstracts the deep feed fetch so cycles can be tested without a
// live instance.
type Lister interface {
	FetchDeep(ctx context.Context, opts feed.Options) ([]bot.Post, error)
}

// IDGenerator mints correlation ids for cycle logging.
type IDGenerator interface {
	NewID() (string, error)
}

// Credentials authenticate the bot account at the start of every cycle.
type Credentials struct {
	Username string
	Password string
}

// Deps carries every collaborator a Pipeline needs. All fields are required
// unless noted.
type Deps struct {
	Client     bot.PlatformClient
	Caller     *retry.Caller
	Feed       Lister
	FeedOpts   feed.Options
	Dedup      bot.DedupStore
	Blocklist  bot.Blocklist
	Fetcher    bot.ArticleFetcher
	Scraper    bot.Scraper
	Summarizer bot.Summarizer
	Gate       gate.Gate
	Renderer   *comment.Renderer
	Clock      bot.Clock
	IDs        IDGenerator // optional, cycle ids omitted when nil
	Creds      Credentials
	Logger     *zap.Logger // optional
}

// Pipeline evaluates feed posts one cycle at a time. Per-post failures are
// contained; only login or listing failures that exhaust their retries abort
// a cycle.
type Pipeline struct {
	deps   Deps
	logger *zap.Logger
}

// New builds a Pipeline from its dependencies.
func New(deps Deps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{deps: deps, logger: logger}
}

// Cycle runs one pass: authenticate, fetch the feed, evaluate every post.
// The returned error is fatal (retries exhausted on login or listing, or a
// cancelled context); everything post-scoped is logged and absorbed.
func (p *Pipeline) Cycle(ctx context.Context) error {
	start := p.deps.Clock.Now()
	logger := p.logger
	if p.deps.IDs != nil {
		if id, err := p.deps.IDs.NewID(); err == nil {
			logger = logger.With(zap.String("cycle_id", id))
		}
	}

	if _, err := retry.Call(ctx, p.deps.Caller, "user.login", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.deps.Client.Login(ctx, p.deps.Creds.Username, p.deps.Creds.Password)
	}); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	posts, err := p.deps.Feed.FetchDeep(ctx, p.deps.FeedOpts)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}
	logger.Info("feed fetched", zap.Int("posts", len(posts)))

	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		outcome, err := p.processPost(ctx, logger, post)
		if err != nil {
			logger.Warn("post failed",
				zap.Int64("post_id", post.ID),
				zap.String("ap_id", post.ApID),
				zap.String("outcome", string(outcome)),
				zap.Error(err))
		}
		if outcome != "" {
			metrics.ObservePost(string(outcome))
		}
	}

	metrics.ObserveCycle(p.deps.Clock.Now().Sub(start))
	return nil
}

// processPost takes one post to a terminal outcome. An empty outcome means
// the post was skipped without being marked processed (no URL, or already
// seen). The error return is advisory except for context cancellation.
func (p *Pipeline) processPost(ctx context.Context, logger *zap.Logger, post bot.Post) (Outcome, error) {
	if post.URL == "" {
		return "", nil
	}
	key := strconv.FormatInt(post.ID, 10)
	seen, err := p.deps.Dedup.Contains(ctx, key)
	if err != nil {
		return "", fmt.Errorf("dedup lookup: %w", err)
	}
	if seen {
		return "", nil
	}

	url := blocklist.NormalizeURL(post.URL)
	logger = logger.With(
		zap.Int64("post_id", post.ID),
		zap.String("ap_id", post.ApID),
		zap.String("url", url),
	)

	domain, err := blocklist.RegistrableDomain(url)
	if err != nil {
		logger.Debug("unparseable link domain", zap.Error(err))
	}
	if domain != "" && p.deps.Blocklist.Contains(domain) {
		logger.Info("domain blocklisted", zap.String("domain", domain))
		return OutcomeBlocklisted, p.markProcessed(ctx, key)
	}

	result, err := p.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		if markErr := p.markProcessed(ctx, key); markErr != nil {
			return OutcomeFetchFailed, markErr
		}
		return OutcomeFetchFailed, fmt.Errorf("fetch article: %w", err)
	}
	if result.SkippedMedia {
		logger.Info("media link skipped", zap.String("content_type", result.ContentType))
		return OutcomeMediaSkip, p.markProcessed(ctx, key)
	}

	article, err := p.deps.Scraper.Scrape(url, result.Body)
	if err != nil {
		if markErr := p.markProcessed(ctx, key); markErr != nil {
			return OutcomeFetchFailed, markErr
		}
		return OutcomeFetchFailed, fmt.Errorf("scrape article: %w", err)
	}

	summary, err := p.deps.Summarizer.Summarize(article.Body)
	if err != nil {
		if markErr := p.markProcessed(ctx, key); markErr != nil {
			return OutcomeFetchFailed, markErr
		}
		return OutcomeFetchFailed, fmt.Errorf("summarize article: %w", err)
	}

	if !p.deps.Gate.Publishable(summary.Reduction) {
		logger.Info("summary outside reduction band", zap.Int("reduction", summary.Reduction))
		return OutcomeGatedOut, p.markProcessed(ctx, key)
	}

	body := p.deps.Renderer.Render(comment.Fields{
		Title:     article.Title,
		URL:       url,
		Reduction: summary.Reduction,
		Date:      scrape.FormatDate(article.Published),
		Sentences: summary.TopSentences,
		Words:     summary.TopWords,
	})

	if _, err := retry.Call(ctx, p.deps.Caller, "comment.create", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.deps.Client.CreateComment(ctx, post.ID, body)
	}); err != nil {
		if markErr := p.markProcessed(ctx, key); markErr != nil {
			return OutcomePublishFailed, markErr
		}
		return OutcomePublishFailed, fmt.Errorf("create comment: %w", err)
	}

	logger.Info("summary published", zap.Int("reduction", summary.Reduction))
	metrics.ObserveCommentPublished()
	return OutcomePublished, p.markProcessed(ctx, key)
}

func (p *Pipeline) markProcessed(ctx context.Context, key string) error {
	if err := p.deps.Dedup.Add(ctx, key); err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	return nil
}
