// Package app initializes and holds long-lived application services, acting
// as a dependency injection container. It is built once at startup from the
// loaded configuration and torn down by Close.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/fedisum/summarybot/internal/article"
	"github.com/fedisum/summarybot/internal/blocklist"
	"github.com/fedisum/summarybot/internal/bot"
	"github.com/fedisum/summarybot/internal/clock/system"
	"github.com/fedisum/summarybot/internal/comment"
	"github.com/fedisum/summarybot/internal/config"
	"github.com/fedisum/summarybot/internal/dedup/file"
	"github.com/fedisum/summarybot/internal/dedup/postgres"
	"github.com/fedisum/summarybot/internal/feed"
	"github.com/fedisum/summarybot/internal/gate"
	iduuid "github.com/fedisum/summarybot/internal/id/uuid"
	"github.com/fedisum/summarybot/internal/logging"
	"github.com/fedisum/summarybot/internal/ops"
	"github.com/fedisum/summarybot/internal/pipeline"
	"github.com/fedisum/summarybot/internal/platform/lemmy"
	"github.com/fedisum/summarybot/internal/retry"
	"github.com/fedisum/summarybot/internal/scrape"
	"github.com/fedisum/summarybot/internal/summarize"
)

// shutdownTimeout bounds the graceful stop of the ops server.
const shutdownTimeout = 5 * time.Second

// closableStore is the store surface the container manages: the pipeline
// only needs bot.DedupStore, but providers hold files or pools that must be
// released on shutdown.
type closableStore interface {
	bot.DedupStore
	io.Closer
}

// App holds the wired services for one bot process.
type App struct {
	cfg    config.Config
	logger *zap.Logger
	store  closableStore
	runner *pipeline.Runner
	ops    *ops.Server
}

// New wires every service from the configuration. It fails fast: a store
// that cannot open or a blocklist file that cannot be read stops startup.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logging: %w", err)
	}
	logger.Info("initializing services",
		zap.String("instance", cfg.Instance.Domain),
		zap.String("store", cfg.Store.Provider))

	var store closableStore
	switch cfg.Store.Provider {
	case "file":
		store, err = file.Open(cfg.Store.File.Path)
		if err != nil {
			return nil, fmt.Errorf("open processed-post log: %w", err)
		}
	case "postgres":
		store, err = postgres.New(ctx, postgres.Config{
			DSN:      cfg.Store.Postgres.DSN,
			Table:    cfg.Store.Postgres.Table,
			MaxConns: cfg.Store.Postgres.MaxConns,
		})
		if err != nil {
			return nil, fmt.Errorf("connect processed-post store: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown store provider: %s", cfg.Store.Provider)
	}

	blocked, err := blocklist.Load(cfg.Blocklist.Path)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load blocklist: %w", err)
	}
	logger.Info("blocklist loaded", zap.Int("domains", blocked.Len()))

	renderer, err := comment.LoadRenderer(cfg.Template.Path)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("load comment template: %w", err)
	}

	client, err := lemmy.New(cfg.Instance.Domain, logger)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build instance client: %w", err)
	}

	caller := retry.NewCaller(retry.Policy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BackoffStep: cfg.BackoffStep(),
	}, nil, logger)

	pipe := pipeline.New(pipeline.Deps{
		Client: client,
		Caller: caller,
		Feed:   feed.New(client, caller, cfg.Feed.Pages, logger),
		FeedOpts: feed.Options{
			Community: cfg.Feed.Community,
			Sort:      cfg.Feed.Sort,
			Listing:   cfg.Feed.Listing,
			SavedOnly: cfg.Feed.SavedOnly,
		},
		Dedup:     store,
		Blocklist: blocked,
		Fetcher: article.NewFetcher(article.Config{
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   cfg.FetchTimeout(),
		}, logger),
		Scraper:    scrape.New(),
		Summarizer: summarize.New(cfg.Summary.Sentences, cfg.Summary.Words),
		Gate:       gate.New(cfg.Gate.MinReduction, cfg.Gate.MaxReduction),
		Renderer:   renderer,
		Clock:      system.New(),
		IDs:        iduuid.New(),
		Creds: pipeline.Credentials{
			Username: cfg.Instance.Username,
			Password: cfg.Instance.Password,
		},
		Logger: logger,
	})

	a := &App{
		cfg:    cfg,
		logger: logger,
		store:  store,
		runner: pipeline.NewRunner(pipe, cfg.SleepInterval(), logger),
	}
	if cfg.Ops.Enabled {
		a.ops = ops.New(cfg.Ops.Addr, logger)
	}
	return a, nil
}

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Run starts the ops server (when enabled) and drives the bot loop until
// the context is cancelled or a cycle fails fatally.
func (a *App) Run(ctx context.Context) error {
	if a.ops != nil {
		a.ops.Start()
	}
	return a.runner.Run(ctx)
}

// Close shuts services down in reverse start order.
func (a *App) Close() {
	if a.ops != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.ops.Shutdown(ctx); err != nil {
			a.logger.Warn("ops server shutdown", zap.Error(err))
		}
		cancel()
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing processed-post store", zap.Error(err))
	}
	// Best effort, stderr syncing fails on some platforms.
	_ = a.logger.Sync()
}
