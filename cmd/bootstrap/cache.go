package bootstrap

import (
	"context"

	"escape-rooms-backend/internal/infra/cache"
	"escape-rooms-backend/internal/pkg/config"
	"escape-rooms-backend/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewAvailabilityCache,
	),
)

// NewAvailabilityCache wires Redis when an address is configured and
// falls back to a no-op cache otherwise.
func NewAvailabilityCache(lc fx.Lifecycle, cfg config.Config) queries.AvailabilityCache {
	if cfg.Redis.Addr == "" {
		return cache.NewNoopAvailabilityCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return cache.NewRedisAvailabilityCache(client, cfg.Redis.AvailabilityTTL)
}
