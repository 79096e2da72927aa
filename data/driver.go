package data

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ncobase/commerce/data/cache"
	"github.com/ncobase/commerce/data/connection"
	"github.com/ncobase/commerce/metrics"
)

// CacheDriver opens the key-value store named by data.cache.driver.
// Drivers register themselves by name, following the pattern of database/sql.
type CacheDriver interface {
	// Name returns the driver identifier used in configuration files
	Name() string

	// Open builds a store over the shared connections
	Open(conn *connection.Connections, collector metrics.CacheMetricsCollector) (cache.Store, error)
}

var (
	cacheDrivers   = make(map[string]CacheDriver)
	cacheDriversMu sync.RWMutex
)

// RegisterCacheDriver makes a cache driver available by the provided name.
// If RegisterCacheDriver is called twice with the same name or if driver is nil,
// it panics.
func RegisterCacheDriver(driver CacheDriver) {
	cacheDriversMu.Lock()
	defer cacheDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterCacheDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterCacheDriver driver name is empty")
	}

	if _, exists := cacheDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterCacheDriver called twice for driver %s", name))
	}

	cacheDrivers[name] = driver
}

// GetCacheDriver retrieves a registered cache driver by name.
func GetCacheDriver(name string) (CacheDriver, error) {
	cacheDriversMu.RLock()
	defer cacheDriversMu.RUnlock()

	driver, ok := cacheDrivers[name]
	if !ok {
		return nil, fmt.Errorf("data: cache driver %q not registered, available drivers: %v", name, listCacheDriversLocked())
	}

	return driver, nil
}

// ListCacheDrivers returns the names of all registered cache drivers.
func ListCacheDrivers() []string {
	cacheDriversMu.RLock()
	defer cacheDriversMu.RUnlock()
	return listCacheDriversLocked()
}

func listCacheDriversLocked() []string {
	names := make([]string, 0, len(cacheDrivers))
	for name := range cacheDrivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type redisDriver struct{}

func (redisDriver) Name() string { return "redis" }

func (redisDriver) Open(conn *connection.Connections, collector metrics.CacheMetricsCollector) (cache.Store, error) {
	if conn == nil || conn.RC == nil {
		return nil, errors.New("data: redis cache driver requires a redis connection")
	}
	return cache.NewRedisStore(conn.RC, collector), nil
}

type memoryDriver struct{}

func (memoryDriver) Name() string { return "memory" }

func (memoryDriver) Open(*connection.Connections, metrics.CacheMetricsCollector) (cache.Store, error) {
	return cache.NewMemoryStore(), nil
}

func init() {
	RegisterCacheDriver(redisDriver{})
	RegisterCacheDriver(memoryDriver{})
}
