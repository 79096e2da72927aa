package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/commerce/metrics"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store over a go-redis client
type RedisStore struct {
	rc        *redis.Client
	collector metrics.CacheMetricsCollector
}

// NewRedisStore creates a new RedisStore instance
func NewRedisStore(rc *redis.Client, collector ...metrics.CacheMetricsCollector) *RedisStore {
	s := &RedisStore{rc: rc, collector: metrics.NoOpCollector{}}
	if len(collector) > 0 && collector[0] != nil {
		s.collector = collector[0]
	}
	return s
}

// Get retrieves a value
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	result, err := s.rc.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		s.collector.RedisCommand("get", nil)
		return "", ErrNotFound
	}
	s.collector.RedisCommand("get", err)
	if err != nil {
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return result, nil
}

// Set saves a value with expiration
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	err := s.rc.Set(ctx, key, value, ttl).Err()
	s.collector.RedisCommand("set", err)
	if err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Incr increments a counter, setting its expiration only when none exists
func (s *RedisStore) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := s.rc.TxPipeline()
	incr := pipe.Incr(ctx, key)
	if ttl > 0 {
		pipe.ExpireNX(ctx, key, ttl)
	}
	_, err := pipe.Exec(ctx)
	s.collector.RedisCommand("incr", err)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}
	return incr.Val(), nil
}

// Delete removes keys
func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.rc.Del(ctx, keys...).Err()
	s.collector.RedisCommand("del", err)
	if err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Exists checks if a key exists
func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.rc.Exists(ctx, key).Result()
	s.collector.RedisCommand("exists", err)
	if err != nil {
		return false, fmt.Errorf("failed to check cache existence: %w", err)
	}
	return n > 0, nil
}

// TTL returns the remaining lifetime of a key
func (s *RedisStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	d, err := s.rc.TTL(ctx, key).Result()
	s.collector.RedisCommand("ttl", err)
	if err != nil {
		return 0, fmt.Errorf("failed to get cache ttl: %w", err)
	}
	switch {
	case d == -2 || d == -2*time.Second:
		return 0, ErrNotFound
	case d < 0:
		return 0, nil
	}
	return d, nil
}

// Ping checks the redis connection
func (s *RedisStore) Ping(ctx context.Context) error {
	err := s.rc.Ping(ctx).Err()
	s.collector.RedisCommand("ping", err)
	return err
}
