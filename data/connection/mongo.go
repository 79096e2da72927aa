package connection

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/commerce/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// newMongoClient creates a new MongoDB client
func newMongoClient(ctx context.Context, conf *config.Mongo) (*mongo.Client, error) {
	if conf == nil || conf.URI == "" {
		return nil, errors.New("mongodb configuration is nil or empty")
	}

	wait := conf.Timeout
	if wait <= 0 {
		wait = defaultTimeout
	}
	clientOptions := options.Client().
		ApplyURI(conf.URI).
		SetConnectTimeout(wait).
		SetServerSelectionTimeout(wait)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("MongoDB connect error: %w", err)
	}

	timeout, cancelFunc := context.WithTimeout(ctx, wait)
	defer cancelFunc()
	if err := client.Ping(timeout, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("MongoDB ping error: %w", err)
	}

	return client, nil
}
