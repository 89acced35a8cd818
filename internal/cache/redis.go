package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"d2dsearch/internal/tsp"
)

// RedisClient is the subset of the go-redis client the cache needs.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// Redis keeps tours in Redis with a TTL, shared across engine replicas.
type Redis struct {
	client RedisClient
	ttl    time.Duration
}

// NewRedis wraps client. A zero ttl keeps entries forever.
func NewRedis(client RedisClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Dial parses a redis:// URL and checks the server answers.
func Dial(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedis(client, ttl), nil
}

func (r *Redis) Get(ctx context.Context, key string) (*tsp.Result, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tour from cache: %w", err)
	}
	var res tsp.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to decode cached tour: %w", err)
	}
	return &res, nil
}

func (r *Redis) Set(ctx context.Context, key string, res tsp.Result) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode tour: %w", err)
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set tour in cache: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
