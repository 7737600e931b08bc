package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/portoo/portoo-backend/internal/domain"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/repository"
	"github.com/redis/go-redis/v9"
)

const (
	portfoliosKey = "directory:portfolios"
	projectsKey   = "directory:projects"

	DefaultTTL = 5 * time.Minute
)

// directoryCache keeps JSON snapshots of the public directory in Redis.
// Cache failures are logged and treated as misses.
type directoryCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewDirectoryCache(client *redis.Client, ttl time.Duration, log *logger.Logger) repository.DirectoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &directoryCache{client: client, ttl: ttl, log: log.With("component", "directory_cache")}
}

func (c *directoryCache) GetPortfolios(ctx context.Context) ([]*domain.Portfolio, bool) {
	var out []*domain.Portfolio
	return out, c.get(ctx, portfoliosKey, &out)
}

func (c *directoryCache) SetPortfolios(ctx context.Context, portfolios []*domain.Portfolio) {
	c.set(ctx, portfoliosKey, portfolios)
}

func (c *directoryCache) GetProjects(ctx context.Context) ([]*domain.ProjectCard, bool) {
	var out []*domain.ProjectCard
	return out, c.get(ctx, projectsKey, &out)
}

func (c *directoryCache) SetProjects(ctx context.Context, projects []*domain.ProjectCard) {
	c.set(ctx, projectsKey, projects)
}

func (c *directoryCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, portfoliosKey, projectsKey).Err(); err != nil {
		c.log.Warn("Failed to invalidate directory cache", "error", err)
	}
}

func (c *directoryCache) get(ctx context.Context, key string, dest interface{}) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Directory cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("Directory cache entry is corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (c *directoryCache) set(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("Failed to encode directory cache entry", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Directory cache write failed", "key", key, "error", err)
	}
}
