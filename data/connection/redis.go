package connection

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/commerce/config"
	"github.com/redis/go-redis/v9"
)

// newRedisClient creates a new Redis client
func newRedisClient(ctx context.Context, conf *config.Redis) (*redis.Client, error) {
	if conf == nil || conf.Addr == "" {
		return nil, errors.New("redis configuration is nil or empty")
	}

	rc := redis.NewClient(&redis.Options{
		Addr:         conf.Addr,
		Username:     conf.Username,
		Password:     conf.Password,
		DB:           conf.DB,
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
		DialTimeout:  conf.DialTimeout,
		PoolSize:     conf.PoolSize,
	})

	dial := conf.DialTimeout
	if dial <= 0 {
		dial = defaultTimeout
	}
	timeout, cancelFunc := context.WithTimeout(ctx, dial)
	defer cancelFunc()
	if err := rc.Ping(timeout).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("redis connect error: %w", err)
	}

	return rc, nil
}
