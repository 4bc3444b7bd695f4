package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/angelospk/sublight-go/pkg/core/metrics"
	log "github.com/sirupsen/logrus"
)

// Cache is a byte oriented key-value store with expiring entries.
type Cache interface {
	// Get returns the value and true if found.
	Get(key string) ([]byte, bool)
	// Set stores value under key, overwriting any previous value.
	Set(key string, value []byte)
	// Len returns the number of entries currently stored.
	Len() int
	// Close releases held resources such as network connections.
	Close() error
}

// ProviderConfig holds the configuration needed to create a cache instance.
type ProviderConfig struct {
	// Size is the maximum number of entries for in-memory caches.
	Size int

	// TTL is the time-to-live for cache entries.
	TTL time.Duration

	// Logger receives error reports from cache operations.
	Logger *log.Logger

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Group labels the hit/miss metrics. Empty disables instrumentation.
	Group string
}

// Provider is a constructor function that creates a Cache from config.
type Provider func(cfg ProviderConfig) (Cache, error)

var (
	mu        sync.RWMutex
	providers = make(map[string]Provider)
)

// Register registers a cache provider under the given name.
// It panics if the name is already registered or the provider is nil.
func Register(name string, p Provider) {
	mu.Lock()
	defer mu.Unlock()

	if p == nil {
		panic("cache: Register provider is nil")
	}
	if _, exists := providers[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	providers[name] = p
}

// New creates a new Cache using the named provider.
func New(name string, cfg ProviderConfig) (Cache, error) {
	mu.RLock()
	p, ok := providers[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (registered: %v)", name, RegisteredProviders())
	}
	if cfg.Logger == nil {
		cfg.Logger = log.StandardLogger()
	}

	inner, err := p(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Group == "" {
		return inner, nil
	}
	return &instrumentedCache{inner: inner, group: cfg.Group}, nil
}

// RegisteredProviders returns a sorted list of registered provider names.
func RegisteredProviders() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// instrumentedCache counts hits and misses under a group label.
type instrumentedCache struct {
	inner Cache
	group string
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		metrics.CacheHitsTotal.WithLabelValues(c.group).Inc()
	} else {
		metrics.CacheMissesTotal.WithLabelValues(c.group).Inc()
	}
	return val, ok
}

func (c *instrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func (c *instrumentedCache) Len() int {
	return c.inner.Len()
}

func (c *instrumentedCache) Close() error {
	return c.inner.Close()
}
