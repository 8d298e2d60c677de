// Package article downloads linked pages and applies content-type and
// encoding policy before scraping.
package article

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/fedisum/summarybot/internal/bot"
)

// DefaultTimeout bounds a single article download.
const DefaultTimeout = 10 * time.Second

// skipContentTypes lists media that can never contain an article. Responses
// of these types are a skip, not an error.
var skipContentTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/jpg":  {},
	"image/gif":  {},
	"image/mp4":  {},
}

// Config controls collector behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// Fetcher implements bot.ArticleFetcher using a Colly collector. Article
// fetches are best-effort: failures are returned to the caller unretried,
// unlike feed and auth calls.
type Fetcher struct {
	cfg    Config
	base   *colly.Collector
	logger *zap.Logger
}

// NewFetcher builds a Fetcher.
func NewFetcher(cfg Config, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base := colly.NewCollector()
	base.IgnoreRobotsTxt = true
	if cfg.UserAgent != "" {
		base.UserAgent = cfg.UserAgent
	}
	base.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: cfg.Timeout,
		MaxIdleConns:        16,
		IdleConnTimeout:     90 * time.Second,
	})
	base.SetRequestTimeout(cfg.Timeout)

	return &Fetcher{cfg: cfg, base: base, logger: logger}
}

type fetchResult struct {
	status      int
	contentType string
	body        []byte
	err         error
}

// Fetch performs one bounded GET of rawURL. Non-article media types become
// a SkippedMedia result; any transport failure or non-2xx status is an
// error. The body is decoded per the encoding correction heuristic.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (bot.FetchResult, error) {
	collector := f.base.Clone()

	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() { resultCh <- res })
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{
			status:      r.StatusCode,
			contentType: r.Headers.Get("Content-Type"),
			body:        append([]byte(nil), r.Body...),
		})
	})
	collector.OnError(func(_ *colly.Response, err error) {
		if err == nil {
			err = errors.New("unknown transport error")
		}
		send(fetchResult{err: err})
	})

	done := make(chan error, 1)
	go func() {
		err := collector.Visit(rawURL)
		collector.Wait()
		done <- err
	}()

	select {
	case <-ctx.Done():
		return bot.FetchResult{}, fmt.Errorf("fetch canceled: %w", ctx.Err())
	case visitErr := <-done:
		select {
		case res := <-resultCh:
			return f.finish(res)
		default:
			if visitErr != nil {
				return bot.FetchResult{}, fmt.Errorf("fetch %s: %w", rawURL, visitErr)
			}
			return bot.FetchResult{}, fmt.Errorf("fetch %s produced no response", rawURL)
		}
	}
}

func (f *Fetcher) finish(res fetchResult) (bot.FetchResult, error) {
	if res.err != nil {
		return bot.FetchResult{}, fmt.Errorf("download article: %w", res.err)
	}

	mediaType, params := parseContentType(res.contentType)
	if _, blocked := skipContentTypes[mediaType]; blocked {
		return bot.FetchResult{SkippedMedia: true, ContentType: mediaType}, nil
	}

	declared := declaredCharset(mediaType, params)
	return bot.FetchResult{
		ContentType: mediaType,
		Body:        decodeBody(res.body, declared),
	}, nil
}

func parseContentType(header string) (string, map[string]string) {
	if header == "" {
		return "", nil
	}
	mediaType, params, err := mime.ParseMediaType(header)
	if err != nil {
		return header, nil
	}
	return mediaType, params
}
