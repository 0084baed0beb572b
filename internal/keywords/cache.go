package keywords

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wellnesscare/wellness-platform/pkg/logging"
)

const snapshotKey = "keywords:snapshot"

// CachedRepository decorates a Repository with a short-lived redis snapshot
// cache. Reads serve the whole keyword set at once, which is exactly the
// point-in-time snapshot a resolution call needs; writes invalidate.
// Cache failures fall through to the inner repository, never to the caller.
type CachedRepository struct {
	inner  Repository
	redis  *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewCachedRepository wraps inner with a redis snapshot cache.
func NewCachedRepository(inner Repository, client *redis.Client, ttl time.Duration, logger *logging.Logger) *CachedRepository {
	if inner == nil {
		panic("keywords: inner repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedRepository{inner: inner, redis: client, ttl: ttl, logger: logger}
}

// GetAll serves the snapshot from redis when fresh, else from the inner
// repository.
func (c *CachedRepository) GetAll(ctx context.Context) (Snapshot, error) {
	if c.redis != nil {
		data, err := c.redis.Get(ctx, snapshotKey).Bytes()
		if err == nil {
			var snap Snapshot
			if jsonErr := json.Unmarshal(data, &snap); jsonErr == nil {
				return snap, nil
			}
			// Corrupt cache entry: drop it and reload.
			_ = c.redis.Del(ctx, snapshotKey).Err()
		} else if err != redis.Nil {
			c.logger.Warn("keyword snapshot cache unavailable", "error", err)
		}
	}

	snap, err := c.inner.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if c.redis != nil {
		if data, err := json.Marshal(snap); err == nil {
			if err := c.redis.Set(ctx, snapshotKey, data, c.ttl).Err(); err != nil {
				c.logger.Warn("failed to cache keyword snapshot", "error", err)
			}
		}
	}
	return snap, nil
}

// Upsert writes through and invalidates the snapshot.
func (c *CachedRepository) Upsert(ctx context.Context, keyword, response string) (*Entry, error) {
	entry, err := c.inner.Upsert(ctx, keyword, response)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return entry, nil
}

// Replace writes through and invalidates the snapshot.
func (c *CachedRepository) Replace(ctx context.Context, id, keyword string, responses []string) (*Entry, error) {
	entry, err := c.inner.Replace(ctx, id, keyword, responses)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx)
	return entry, nil
}

// Delete writes through and invalidates the snapshot.
func (c *CachedRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedRepository) invalidate(ctx context.Context) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, snapshotKey).Err(); err != nil {
		c.logger.Warn("failed to invalidate keyword snapshot", "error", fmt.Errorf("keywords: %w", err))
	}
}
