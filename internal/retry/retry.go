// Package retry wraps remote operations with bounded linear-backoff retry.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fedisum/summarybot/internal/metrics"
)

// ErrExhausted marks an operation that failed every allowed attempt. Callers
// treat it as fatal: the process is expected to exit and be restarted by a
// supervisor rather than limp along without its feed.
var ErrExhausted = errors.New("retry attempts exhausted")

// Policy holds the retry knobs: how many attempts are allowed and the step
// of the linear backoff. Attempt n waits n*BackoffStep before attempt n+1.
type Policy struct {
	MaxAttempts int
	BackoffStep time.Duration
}

// DefaultPolicy matches the API contract: 10 attempts, waits of 5s, 10s,
// 15s and so on up to 45s before the final attempt.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 10, BackoffStep: 5 * time.Second}
}

// Backoff returns the wait duration after the given 1-based failed attempt.
func (p Policy) Backoff(attempt int) time.Duration {
	return time.Duration(attempt) * p.BackoffStep
}

// SleepFunc suspends for d or until the context finishes. Tests inject a
// recording implementation so retries run without real delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Caller invokes remote operations under a Policy.
type Caller struct {
	policy Policy
	sleep  SleepFunc
	logger *zap.Logger
}

// NewCaller builds a Caller. A nil sleep falls back to a context-aware
// real sleep; a nil logger falls back to a no-op logger.
func NewCaller(policy Policy, sleep SleepFunc, logger *zap.Logger) *Caller {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultPolicy().MaxAttempts
	}
	if policy.BackoffStep <= 0 {
		policy.BackoffStep = DefaultPolicy().BackoffStep
	}
	if sleep == nil {
		sleep = contextSleep
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Caller{policy: policy, sleep: sleep, logger: logger}
}

// Call runs op until it succeeds or the policy's attempt ceiling is hit.
// Operations signal failure through their error return; an empty API
// response must already have been converted to an error by the operation.
// Exhaustion wraps ErrExhausted together with the last operation error.
func Call[T any](ctx context.Context, c *Caller, name string, op func(context.Context) (T, error)) (T, error) {
	var zero T
	for attempt := 1; ; attempt++ {
		out, err := op(ctx)
		if err == nil {
			return out, nil
		}
		if attempt >= c.policy.MaxAttempts {
			return zero, fmt.Errorf("%s failed after %d attempts: %w", name, attempt, errors.Join(ErrExhausted, err))
		}
		wait := c.policy.Backoff(attempt)
		c.logger.Warn("remote call failed, will retry",
			zap.String("op", name),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
		metrics.ObserveRetry(name)
		if serr := c.sleep(ctx, wait); serr != nil {
			return zero, fmt.Errorf("%s retry interrupted: %w", name, serr)
		}
	}
}
