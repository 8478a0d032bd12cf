package cache

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ShortLinkCache is the slice of the redis client the controllers use to
// keep cached short-link codes in step with recipe existence.
type ShortLinkCache interface {
	StoreShortLink(code string, recipeID uint, duration time.Duration) error
	GetShortLink(code string) (uint, bool, error)
	DeleteShortLink(code string) error
}

type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

var _ ShortLinkCache = (*RedisClient)(nil)

func NewRedisClient() (*RedisClient, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	// Test connection
	_, err = client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{
		client: client,
		ctx:    ctx,
	}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// StoreShortLink caches a resolved short-link code against its recipe id.
func (r *RedisClient) StoreShortLink(code string, recipeID uint, duration time.Duration) error {
	key := fmt.Sprintf("shortlink:%s", code)
	err := r.client.Set(r.ctx, key, strconv.FormatUint(uint64(recipeID), 10), duration).Err()
	if err != nil {
		return fmt.Errorf("failed to store short link in Redis: %w", err)
	}
	return nil
}

// GetShortLink returns the cached recipe id for a code, if present.
func (r *RedisClient) GetShortLink(code string) (uint, bool, error) {
	key := fmt.Sprintf("shortlink:%s", code)

	data, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return 0, false, nil // Key doesn't exist
		}
		return 0, false, fmt.Errorf("failed to get short link from Redis: %w", err)
	}

	recipeID, err := strconv.ParseUint(data, 10, 32)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse cached recipe id: %w", err)
	}

	return uint(recipeID), true, nil
}

// DeleteShortLink drops a cached code, used when its recipe is deleted.
func (r *RedisClient) DeleteShortLink(code string) error {
	key := fmt.Sprintf("shortlink:%s", code)
	return r.client.Del(r.ctx, key).Err()
}

// GetStatus reports pool statistics for the debug endpoint.
func (r *RedisClient) GetStatus() (map[string]interface{}, error) {
	if _, err := r.client.Ping(r.ctx).Result(); err != nil {
		return nil, err
	}

	stats := r.client.PoolStats()

	return map[string]interface{}{
		"connected":    true,
		"hits":         stats.Hits,
		"misses":       stats.Misses,
		"active_conns": stats.TotalConns,
	}, nil
}
