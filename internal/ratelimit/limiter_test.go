package ratelimit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyhub/surveyhub/internal/ratelimit"
	"github.com/surveyhub/surveyhub/internal/store"
)

type failingStore struct{}

func (failingStore) Record(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("store down")
}

func TestSlidingWindowLimiter(t *testing.T) {
	t.Run("allows up to the limit", func(t *testing.T) {
		limiter := ratelimit.NewSlidingWindowLimiter(store.NewRateLimitMemory(), 3, time.Minute)

		for i := 0; i < 3; i++ {
			allowed, err := limiter.Allow(context.Background(), "client-a")
			require.NoError(t, err)
			assert.True(t, allowed)
		}

		allowed, err := limiter.Allow(context.Background(), "client-a")
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("keys are independent", func(t *testing.T) {
		limiter := ratelimit.NewSlidingWindowLimiter(store.NewRateLimitMemory(), 1, time.Minute)

		allowed, err := limiter.Allow(context.Background(), "client-a")
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = limiter.Allow(context.Background(), "client-b")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("expired entries are pruned", func(t *testing.T) {
		limiter := ratelimit.NewSlidingWindowLimiter(store.NewRateLimitMemory(), 1, 10*time.Millisecond)

		allowed, err := limiter.Allow(context.Background(), "client-a")
		require.NoError(t, err)
		assert.True(t, allowed)

		time.Sleep(20 * time.Millisecond)

		allowed, err = limiter.Allow(context.Background(), "client-a")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		limiter := ratelimit.NewSlidingWindowLimiter(failingStore{}, 1, time.Minute)

		_, err := limiter.Allow(context.Background(), "client-a")

		assert.Error(t, err)
	})
}
