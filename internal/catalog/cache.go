package catalog

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"supermarket-comparator/internal/common/logger"
)

const redisCatalogKey = "catalog:v1"

// RedisSource is a cache-aside layer over another Source: read through Redis,
// fall back to the inner source and repopulate. Redis trouble degrades to the
// inner source rather than failing the load.
type RedisSource struct {
	inner  Source
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisSource(inner Source, rdb *redis.Client, ttl time.Duration, log logger.Logger) *RedisSource {
	return &RedisSource{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-redis"}),
	}
}

func (s *RedisSource) Load(ctx context.Context) (*Catalog, error) {
	if val, err := s.redis.Get(ctx, redisCatalogKey).Result(); err == nil {
		var cat Catalog
		if err := json.Unmarshal([]byte(val), &cat); err == nil {
			s.logger.Debug("catalog cache hit", map[string]interface{}{
				"stores": len(cat.Stores),
			})
			return &cat, nil
		}
		s.logger.Warn("discarding corrupt cached catalog", map[string]interface{}{
			"error": err,
		})
	} else if err != redis.Nil {
		s.logger.Warn("catalog cache read failed", map[string]interface{}{
			"error": err,
		})
	}

	cat, err := s.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(cat); err == nil {
		if err := s.redis.Set(ctx, redisCatalogKey, data, s.ttl).Err(); err != nil {
			s.logger.Warn("catalog cache write failed", map[string]interface{}{
				"error": err,
			})
		}
	}

	return cat, nil
}

// Invalidate drops the cached catalog.
func (s *RedisSource) Invalidate(ctx context.Context) error {
	return s.redis.Del(ctx, redisCatalogKey).Err()
}

const localCatalogKey = "catalog"

// LocalSource keeps the loaded catalog in process memory with a TTL, so
// repeated comparisons in one session skip the slower source entirely.
type LocalSource struct {
	inner Source
	cache *gocache.Cache
}

func NewLocalSource(inner Source, ttl time.Duration) *LocalSource {
	return &LocalSource{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *LocalSource) Load(ctx context.Context) (*Catalog, error) {
	if cached, found := s.cache.Get(localCatalogKey); found {
		if cat, ok := cached.(*Catalog); ok {
			return cat, nil
		}
	}

	cat, err := s.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(localCatalogKey, cat, gocache.DefaultExpiration)
	return cat, nil
}
