package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	// keyPrefix namespaces all cache keys in Redis.
	keyPrefix = "sublight:"

	redisTimeout = 2 * time.Second
)

func init() {
	Register("redis", newRedisCache)
}

// redisCache stores entries as plain keys with a server-side expiry.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func newRedisCache(cfg ProviderConfig) (Cache, error) {
	if cfg.RedisAddress == "" {
		return nil, errors.New("cache: redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("cache: failed to connect to redis at %s: %w", cfg.RedisAddress, err)
	}

	return &redisCache{client: client, ttl: cfg.TTL, logger: cfg.Logger}, nil
}

func (r *redisCache) Get(key string) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.WithError(err).WithField("key", key).Warn("Redis cache get failed")
		}
		return nil, false
	}
	return val, true
}

func (r *redisCache) Set(key string, value []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := r.client.Set(ctx, keyPrefix+key, value, r.ttl).Err(); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("Redis cache set failed")
	}
}

func (r *redisCache) Len() int {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	var count int
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		r.logger.WithError(err).Warn("Redis cache scan failed")
	}
	return count
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
