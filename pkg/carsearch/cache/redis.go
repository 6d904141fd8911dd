package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nekruzvatanshoev/carsearch/pkg/carsearch/dal"
)

const redisKeyPrefix = "carsearch:results:"

// Redis is a Cache backed by a Redis instance, for deployments where search
// results should be shared across replicas. Expiry is delegated to Redis
// key TTLs.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis connects to redisURL and verifies the connection.
func NewRedis(ctx context.Context, redisURL string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}, nil
}

// NewRedisWithClient wraps an existing client, for tests.
func NewRedisWithClient(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]dal.Car, bool) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}
	var payload []dal.Car
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	return payload, true
}

func (r *Redis) Put(ctx context.Context, key string, payload []dal.Car) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}
	r.client.Set(ctx, redisKeyPrefix+key, raw, r.ttl)
}

// Scan walks all cached result sets using incremental SCAN, so it never
// blocks the Redis server the way KEYS would.
func (r *Redis) Scan(ctx context.Context, fn func(key string, payload []dal.Car) bool) {
	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		fullKey := iter.Val()
		raw, err := r.client.Get(ctx, fullKey).Bytes()
		if err != nil {
			continue
		}
		var payload []dal.Car
		if err := json.Unmarshal(raw, &payload); err != nil {
			continue
		}
		if !fn(fullKey[len(redisKeyPrefix):], payload) {
			return
		}
	}
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
