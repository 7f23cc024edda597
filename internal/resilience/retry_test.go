package resilience

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
	}
}

func TestDoValReturnsFirstSuccess(t *testing.T) {
	calls := 0
	v, err := DoVal(context.Background(), fastRetry(3), func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 1, calls)
}

func TestDoValRetriesTransientFailures(t *testing.T) {
	calls := 0
	v, err := DoVal(context.Background(), fastRetry(3), func(context.Context) (int, error) {
		if calls++; calls < 3 {
			return 0, NewTransientError(eris.New("throttled"), 429)
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 3, calls)
}

func TestDoValStopsOnPermanentError(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), fastRetry(5), func(context.Context) (string, error) {
		calls++
		return "", eris.New("bad credentials")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoValExhaustsAttempts(t *testing.T) {
	calls := 0
	boom := NewTransientError(eris.New("upstream down"), 503)
	_, err := DoVal(context.Background(), fastRetry(3), func(context.Context) (string, error) {
		calls++
		return "", boom
	})
	assert.Equal(t, 3, calls)
	assert.True(t, eris.Is(err, boom))
}

func TestDoValHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := DoVal(ctx, RetryConfig{MaxAttempts: 5, InitialBackoff: time.Minute, MaxBackoff: time.Minute},
		func(context.Context) (string, error) {
			calls++
			cancel()
			return "", NewTransientError(eris.New("flaky"), 0)
		})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDoValTreatsZeroAttemptsAsOne(t *testing.T) {
	calls := 0
	_, err := DoVal(context.Background(), RetryConfig{}, func(context.Context) (string, error) {
		calls++
		return "", eris.New("nope")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
