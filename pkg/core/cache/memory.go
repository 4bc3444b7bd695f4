package cache

import (
	"github.com/angelospk/sublight-go/pkg/core/metrics"
	lru "github.com/hashicorp/golang-lru/v2/expirable"
	log "github.com/sirupsen/logrus"
)

const defaultMemorySize = 256

func init() {
	Register("memory", newMemoryCache)
}

// memoryCache keeps search results and subtitle archives in a size bounded
// LRU whose entries expire after the configured TTL.
type memoryCache struct {
	entries *lru.LRU[string, []byte]
	group   string
	logger  *log.Logger
}

func newMemoryCache(cfg ProviderConfig) (Cache, error) {
	size := cfg.Size
	if size <= 0 {
		size = defaultMemorySize
	}
	return &memoryCache{
		entries: lru.NewLRU[string, []byte](size, nil, cfg.TTL),
		group:   cfg.Group,
		logger:  cfg.Logger,
	}, nil
}

func (m *memoryCache) Get(key string) ([]byte, bool) {
	return m.entries.Get(key)
}

// Set stores value, dropping the least recently used entry when full.
func (m *memoryCache) Set(key string, value []byte) {
	if !m.entries.Add(key, value) {
		return
	}
	if m.group != "" {
		metrics.CacheEvictionsTotal.WithLabelValues(m.group).Inc()
	}
	if m.logger != nil {
		m.logger.WithField("size", m.entries.Len()).Debug("Memory cache full, evicted oldest entry")
	}
}

func (m *memoryCache) Len() int {
	return m.entries.Len()
}

// Close drops every entry.
func (m *memoryCache) Close() error {
	m.entries.Purge()
	return nil
}
