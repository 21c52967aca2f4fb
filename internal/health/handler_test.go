package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surveyhub/surveyhub/internal/health"
)

type stubChecker struct {
	err error
}

func (s stubChecker) Ping(_ context.Context) error {
	return s.err
}

func TestCheck(t *testing.T) {
	t.Run("all dependencies healthy", func(t *testing.T) {
		h := health.NewHandler(stubChecker{}, stubChecker{})

		resp, err := h.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Redis)
		assert.Equal(t, "healthy", resp.Body.Postgres)
	})

	t.Run("redis down degrades the service", func(t *testing.T) {
		h := health.NewHandler(stubChecker{err: errors.New("connection refused")}, stubChecker{})

		resp, err := h.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "unhealthy", resp.Body.Redis)
		assert.Equal(t, "healthy", resp.Body.Postgres)
	})

	t.Run("postgres down degrades the service", func(t *testing.T) {
		h := health.NewHandler(stubChecker{}, stubChecker{err: errors.New("connection refused")})

		resp, err := h.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Redis)
		assert.Equal(t, "unhealthy", resp.Body.Postgres)
	})
}
