package config

import (
	"time"

	"github.com/spf13/viper"
)

// Data represents the data configuration
type Data struct {
	Mongo *Mongo
	Redis *Redis
	Cache *Cache
}

// Mongo document store config struct
type Mongo struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Redis redis config struct
type Redis struct {
	Addr         string
	Username     string
	Password     string
	DB           int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
	PoolSize     int
}

// Cache selects the key-value store backing tokens and rate limits
type Cache struct {
	Driver string // redis | memory
}

// getDataConfig returns data config
func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		Mongo: &Mongo{
			URI:      getStringOrDefault(v, "data.mongo.uri", "mongodb://localhost:27017"),
			Database: getStringOrDefault(v, "data.mongo.database", "commerce"),
			Timeout:  getDurationOrDefault(v, "data.mongo.timeout", 10*time.Second),
		},
		Redis: &Redis{
			Addr:         getStringOrDefault(v, "data.redis.addr", "localhost:6379"),
			Username:     v.GetString("data.redis.username"),
			Password:     v.GetString("data.redis.password"),
			DB:           v.GetInt("data.redis.db"),
			ReadTimeout:  getDurationOrDefault(v, "data.redis.read_timeout", 3*time.Second),
			WriteTimeout: getDurationOrDefault(v, "data.redis.write_timeout", 3*time.Second),
			DialTimeout:  getDurationOrDefault(v, "data.redis.dial_timeout", 5*time.Second),
			PoolSize:     getIntOrDefault(v, "data.redis.pool_size", 10),
		},
		Cache: &Cache{
			Driver: getStringOrDefault(v, "data.cache.driver", "redis"),
		},
	}
}
