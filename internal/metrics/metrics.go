// Package metrics exposes Prometheus collectors for the summary bot.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	botPostsTotal             *prometheus.CounterVec
	botCommentsPublishedTotal prometheus.Counter
	botFeedPagesTotal         prometheus.Counter
	botAPIRetriesTotal        *prometheus.CounterVec
	botCycleDurationSeconds   prometheus.Histogram

	once sync.Once
)

// Init initializes the Prometheus collectors. It is safe to call multiple
// times; every Observe helper calls it first so metrics work in tests
// without explicit setup.
func Init() {
	once.Do(func() {
		botPostsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bot_posts_total",
				Help: "Total number of posts evaluated, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		botCommentsPublishedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bot_comments_published_total",
				Help: "Total number of summary comments published.",
			},
		)

		botFeedPagesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "bot_feed_pages_total",
				Help: "Total number of feed pages fetched.",
			},
		)

		botAPIRetriesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bot_api_retries_total",
				Help: "Total number of platform API retries, labeled by operation.",
			},
			[]string{"op"},
		)

		botCycleDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bot_cycle_duration_seconds",
				Help:    "Histogram of full pipeline cycle durations.",
				Buckets: []float64{0.5, 1, 5, 15, 60, 300, 900},
			},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePost increments the post counter for the given outcome.
func ObservePost(outcome string) {
	Init()
	botPostsTotal.WithLabelValues(outcome).Inc()
}

// ObserveCommentPublished increments the published comment counter.
func ObserveCommentPublished() {
	Init()
	botCommentsPublishedTotal.Inc()
}

// ObserveFeedPage increments the feed page counter.
func ObserveFeedPage() {
	Init()
	botFeedPagesTotal.Inc()
}

// ObserveRetry increments the retry counter for the given operation.
func ObserveRetry(op string) {
	Init()
	botAPIRetriesTotal.WithLabelValues(op).Inc()
}

// ObserveCycle records the duration of a completed cycle.
func ObserveCycle(d time.Duration) {
	Init()
	botCycleDurationSeconds.Observe(d.Seconds())
}
