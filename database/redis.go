package database

import (
	"sync"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"

	"github.com/dakshininfra/purchase-api/config"
)

var (
	redisClient *redis.Client
	redisCache  *cache.Cache
	redisOnce   sync.Once
	redisError  error
)

// StartRedis connects the cache used by the auth middleware. Same singleton
// shape as StartMongoDB.
func StartRedis() error {
	redisOnce.Do(func() {
		url := config.GetEnvWithDefault("REDIS_URL", "redis://localhost:6379")
		opts, err := redis.ParseURL(url)
		if err != nil {
			redisError = err
			return
		}
		redisClient = redis.NewClient(opts)

		ctx, cancel := NewDBContext(5 * time.Second)
		defer cancel()
		if err = redisClient.Ping(ctx).Err(); err != nil {
			redisError = err
			return
		}

		redisCache = cache.New(&cache.Options{
			Redis:      redisClient,
			LocalCache: cache.NewTinyLFU(1000, time.Minute),
		})
	})
	return redisError
}

func GetCache() *cache.Cache {
	return redisCache
}

func CloseRedis() {
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
