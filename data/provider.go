package data

import (
	"context"

	"github.com/google/wire"
	"github.com/ncobase/commerce/config"
	"github.com/ncobase/commerce/data/cache"
	"github.com/ncobase/commerce/metrics"
)

// ProviderSet is the wire provider set for the data package.
// It provides *Data with a cleanup function that closes all connections.
var ProviderSet = wire.NewSet(ProvideData, ProvideCacheStore)

// ProvideData initializes and returns the data layer with cleanup function.
func ProvideData(cfg *config.Data, m *metrics.Metrics) (*Data, func(), error) {
	return New(context.Background(), cfg, WithMetricsCollector(m))
}

// ProvideCacheStore exposes the selected key-value store.
func ProvideCacheStore(d *Data) cache.Store {
	return d.Cache
}
