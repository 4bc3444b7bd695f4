package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Remote service metrics
var (
	RemoteCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sublight_remote_calls_total",
			Help: "Total number of Sublight web service calls.",
		},
		[]string{"operation", "status"},
	)

	RemoteCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sublight_remote_call_duration_seconds",
			Help:    "Duration of Sublight web service calls in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Session metrics
var (
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sublight_logins_total",
			Help: "Total number of session logins.",
		},
		[]string{"kind"},
	)

	IdleLogoutsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sublight_idle_logouts_total",
			Help: "Total number of sessions closed by the idle timer.",
		},
	)
)

// Batch lookup metrics
var (
	BatchFilesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sublight_batch_files_total",
			Help: "Total number of files processed by batch lookups.",
		},
		[]string{"result"},
	)
)

// Cache metrics, labelled with the cache group
var (
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sublight_cache_hits_total",
			Help: "Total number of cache hits.",
		},
		[]string{"cache"},
	)

	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sublight_cache_misses_total",
			Help: "Total number of cache misses.",
		},
		[]string{"cache"},
	)

	CacheEvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sublight_cache_evictions_total",
			Help: "Total number of entries evicted from a full memory cache.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(
		RemoteCallsTotal,
		RemoteCallDuration,
		LoginsTotal,
		IdleLogoutsTotal,
		BatchFilesTotal,
		CacheHitsTotal,
		CacheMissesTotal,
		CacheEvictionsTotal,
	)
}
