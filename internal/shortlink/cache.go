package shortlink

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "shortlink:"

// cachedRepo decorates a Repository with a read-through redis cache on
// hash lookups. Writes and origin lookups pass straight through; a cache
// failure falls back to the database rather than failing the request.
type cachedRepo struct {
	inner Repository
	rdb   *redis.Client
	ttl   time.Duration
}

// NewCachedRepository wraps repo with a redis resolve cache. Mappings
// are immutable once created, so cached entries never need invalidation.
func NewCachedRepository(inner Repository, rdb *redis.Client, ttl time.Duration) Repository {
	return &cachedRepo{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *cachedRepo) Create(ctx context.Context, m Mapping) (Mapping, error) {
	return c.inner.Create(ctx, m)
}

func (c *cachedRepo) GetByOrigin(ctx context.Context, originalURL, ownerID string) (Mapping, error) {
	return c.inner.GetByOrigin(ctx, originalURL, ownerID)
}

func (c *cachedRepo) GetByHash(ctx context.Context, hash string) (Mapping, error) {
	key := cacheKeyPrefix + hash

	if url, err := c.rdb.Get(ctx, key).Result(); err == nil {
		return Mapping{ShortHash: hash, OriginalURL: url}, nil
	}

	m, err := c.inner.GetByHash(ctx, hash)
	if err != nil {
		return Mapping{}, err
	}

	// Best effort; a failed SET only costs the next lookup a DB hit.
	c.rdb.Set(ctx, key, m.OriginalURL, c.ttl)

	return m, nil
}
