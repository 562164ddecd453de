package lock

import (
	"context"

	rd "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/feasthq/mealdesk/internal/config"
)

// Module wires the redis client and the refund locker.
var Module = fx.Options(
	fx.Provide(newRedisClient),
	fx.Provide(func(rdb *rd.Client) *Locker { return New(rdb, 0) }),
	fx.Invoke(registerLifecycle),
)

func newRedisClient(cfg *config.Config) *rd.Client {
	return rd.NewClient(&rd.Options{Addr: cfg.RedisAddress})
}

func registerLifecycle(lc fx.Lifecycle, rdb *rd.Client) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return rdb.Close()
		},
	})
}
