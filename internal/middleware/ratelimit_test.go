package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCheckRateLimit(t *testing.T) {
	ctx := context.Background()
	rdb := newTestRedis(t)

	const limit = 3
	for i := 0; i < limit; i++ {
		allowed, err := CheckRateLimit(ctx, rdb, "claim", "ip:1.2.3.4", limit, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := CheckRateLimit(ctx, rdb, "claim", "ip:1.2.3.4", limit, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed, "request over the limit should be rejected")

	// A different caller is unaffected.
	allowed, err = CheckRateLimit(ctx, rdb, "claim", "ip:5.6.7.8", limit, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimit_NilClientFailsOpen(t *testing.T) {
	allowed, err := CheckRateLimit(context.Background(), nil, "claim", "ip:1.2.3.4", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	rdb := newTestRedis(t)

	app := fiber.New()
	app.Post("/claim", RateLimit(rdb, 2, time.Minute, "claim"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/claim", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		statuses = append(statuses, resp.StatusCode)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}
