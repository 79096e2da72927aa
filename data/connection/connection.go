package connection

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ncobase/commerce/config"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const defaultTimeout = 5 * time.Second

// Connections holds the shared store clients
type Connections struct {
	MG     *mongo.Client
	RC     *redis.Client
	closed bool
	mu     sync.Mutex
}

// New creates the configured clients. Redis is only dialled when the
// cache driver needs it.
func New(ctx context.Context, conf *config.Data) (*Connections, error) {
	c := &Connections{}
	var err error

	if conf.Cache != nil && conf.Cache.Driver == "redis" {
		c.RC, err = newRedisClient(ctx, conf.Redis)
		if err != nil {
			return nil, err
		}
	}

	if conf.Mongo != nil && conf.Mongo.URI != "" {
		c.MG, err = newMongoClient(ctx, conf.Mongo)
		if err != nil {
			c.Close()
			return nil, err
		}
	}

	return c, nil
}

// Close closes all data connections
func (d *Connections) Close() (errs []error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}

	if d.RC != nil {
		if err := d.RC.Close(); err != nil {
			errs = append(errs, errors.New("redis close error: "+err.Error()))
		}
		d.RC = nil
	}

	if d.MG != nil {
		if err := d.MG.Disconnect(context.Background()); err != nil {
			errs = append(errs, errors.New("mongodb close error: "+err.Error()))
		}
		d.MG = nil
	}

	d.closed = true

	return errs
}

// GetMongoDatabase retrieves a specific MongoDB database
func (d *Connections) GetMongoDatabase(databaseName string) *mongo.Database {
	if d.MG == nil {
		return nil
	}
	return d.MG.Database(databaseName)
}
