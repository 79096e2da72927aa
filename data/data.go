// Package data owns the shared store clients: Mongo for credential
// records and the key-value cache for tokens and rate-limit counters.
package data

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/commerce/config"
	"github.com/ncobase/commerce/data/cache"
	"github.com/ncobase/commerce/data/connection"
	"github.com/ncobase/commerce/metrics"
	"go.mongodb.org/mongo-driver/mongo"
)

// Data represents the data layer implementation
type Data struct {
	Conn  *connection.Connections
	Cache cache.Store

	database  string
	collector metrics.CacheMetricsCollector
}

// Option function type for configuring Data
type Option func(*Data)

// WithMetricsCollector sets the metrics collector
func WithMetricsCollector(collector metrics.CacheMetricsCollector) Option {
	return func(d *Data) {
		if collector != nil {
			d.collector = collector
		}
	}
}

// New creates new data layer
func New(ctx context.Context, cfg *config.Data, opts ...Option) (*Data, func(), error) {
	if cfg == nil {
		return nil, nil, errors.New("data: configuration is nil")
	}

	d := &Data{collector: metrics.NoOpCollector{}}
	if cfg.Mongo != nil {
		d.database = cfg.Mongo.Database
	}
	for _, opt := range opts {
		opt(d)
	}

	driverName := "redis"
	if cfg.Cache != nil && cfg.Cache.Driver != "" {
		driverName = cfg.Cache.Driver
	}
	driver, err := GetCacheDriver(driverName)
	if err != nil {
		return nil, nil, err
	}

	conn, err := connection.New(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	d.Conn = conn

	d.Cache, err = driver.Open(conn, d.collector)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	cleanup := func() {
		if errs := d.Close(); len(errs) > 0 {
			fmt.Printf("cleanup errors: %v\n", errs)
		}
	}

	return d, cleanup, nil
}

// NewWithStore creates a data layer over an existing store, without Mongo.
func NewWithStore(store cache.Store) *Data {
	return &Data{
		Conn:      &connection.Connections{},
		Cache:     store,
		collector: metrics.NoOpCollector{},
	}
}

// Database returns the configured Mongo database, or nil when Mongo is not connected
func (d *Data) Database() *mongo.Database {
	if d.Conn == nil {
		return nil
	}
	return d.Conn.GetMongoDatabase(d.database)
}

// Close releases every connection
func (d *Data) Close() []error {
	if d.Conn == nil {
		return nil
	}
	return d.Conn.Close()
}
