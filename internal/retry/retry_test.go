package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSleeper struct {
	waits []time.Duration
}

func (s *recordingSleeper) sleep(_ context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return nil
}

func TestCallSucceedsFirstAttempt(t *testing.T) {
	t.Parallel()

	sleeper := &recordingSleeper{}
	caller := NewCaller(DefaultPolicy(), sleeper.sleep, zap.NewNop())

	calls := 0
	out, err := Call(context.Background(), caller, "login", func(context.Context) (string, error) {
		calls++
		return "token", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "token", out)
	assert.Equal(t, 1, calls)
	assert.Empty(t, sleeper.waits)
}

func TestCallRetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	sleeper := &recordingSleeper{}
	caller := NewCaller(DefaultPolicy(), sleeper.sleep, zap.NewNop())

	calls := 0
	out, err := Call(context.Background(), caller, "post.list", func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("empty response")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, out)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{5 * time.Second, 10 * time.Second}, sleeper.waits)
}

func TestCallExhaustsAfterTenAttempts(t *testing.T) {
	t.Parallel()

	sleeper := &recordingSleeper{}
	caller := NewCaller(DefaultPolicy(), sleeper.sleep, zap.NewNop())

	calls := 0
	_, err := Call(context.Background(), caller, "post.list", func(context.Context) ([]string, error) {
		calls++
		return nil, errors.New("still failing")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 10, calls)

	// Nine waits of 5s, 10s, ..., 45s between the ten attempts.
	require.Len(t, sleeper.waits, 9)
	var total time.Duration
	for i, wait := range sleeper.waits {
		assert.Equal(t, time.Duration(i+1)*5*time.Second, wait)
		total += wait
	}
	assert.Equal(t, 225*time.Second, total)
}

func TestCallKeepsLastError(t *testing.T) {
	t.Parallel()

	sleeper := &recordingSleeper{}
	caller := NewCaller(Policy{MaxAttempts: 2, BackoffStep: time.Second}, sleeper.sleep, zap.NewNop())

	opErr := errors.New("instance unreachable")
	_, err := Call(context.Background(), caller, "login", func(context.Context) (struct{}, error) {
		return struct{}{}, opErr
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhausted)
	assert.ErrorIs(t, err, opErr)
	assert.Contains(t, err.Error(), "login")
}

func TestCallStopsWhenContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	caller := NewCaller(DefaultPolicy(), func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}, zap.NewNop())

	calls := 0
	_, err := Call(ctx, caller, "post.list", func(context.Context) (int, error) {
		calls++
		return 0, errors.New("fail")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPolicyBackoffIsLinear(t *testing.T) {
	t.Parallel()

	p := DefaultPolicy()
	assert.Equal(t, 5*time.Second, p.Backoff(1))
	assert.Equal(t, 25*time.Second, p.Backoff(5))
	assert.Equal(t, 45*time.Second, p.Backoff(9))
}
