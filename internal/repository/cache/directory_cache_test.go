package cache

import (
	"context"
	"testing"
	"time"

	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

// An unreachable Redis must degrade to cache misses.
func TestUnreachableRedisIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	c := NewDirectoryCache(client, 0, logger.NewNop())
	ctx := context.Background()

	c.SetPortfolios(ctx, []*domain.Portfolio{{Username: "alex"}})
	got, ok := c.GetPortfolios(ctx)
	assert.False(t, ok)
	assert.Empty(t, got)

	_, ok = c.GetProjects(ctx)
	assert.False(t, ok)
	c.Invalidate(ctx)
}
