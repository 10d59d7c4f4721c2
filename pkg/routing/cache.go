package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/routecost/pkg/ctdf"
)

type segmentStore interface {
	Get(ctx context.Context, key any) (string, error)
	Set(ctx context.Context, key any, object string, options ...store.Option) error
}

// ResultCache keeps routing engine answers per segment. A nil ResultCache is a no-op.
type ResultCache struct {
	Cache segmentStore
}

func NewResultCache(client *redis.Client, expiration time.Duration) *ResultCache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &ResultCache{
		Cache: cache.New[string](redisStore),
	}
}

type cachedSegment struct {
	Distance float64     `json:"distance"`
	Duration float64     `json:"duration"`
	Geometry [][]float64 `json:"geometry"`
}

func segmentCacheKey(profile string, from ctdf.RoutePoint, to ctdf.RoutePoint) string {
	return fmt.Sprintf("route:%s:%.5f,%.5f;%.5f,%.5f", profile, from.Longitude, from.Latitude, to.Longitude, to.Latitude)
}

func (c *ResultCache) get(ctx context.Context, key string) (*cachedSegment, bool) {
	if c == nil || c.Cache == nil {
		return nil, false
	}

	value, err := c.Cache.Get(ctx, key)
	if err != nil || value == "" {
		return nil, false
	}

	var segment cachedSegment
	if err := json.Unmarshal([]byte(value), &segment); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Ignoring unreadable cached route segment")
		return nil, false
	}

	return &segment, true
}

func (c *ResultCache) set(ctx context.Context, key string, segment *cachedSegment) {
	if c == nil || c.Cache == nil {
		return
	}

	value, err := json.Marshal(segment)
	if err != nil {
		return
	}

	if err := c.Cache.Set(ctx, key, string(value)); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Failed to cache route segment")
	}
}
