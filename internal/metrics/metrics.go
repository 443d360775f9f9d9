package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Business Metrics
var (
	UnitsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "units_created_total",
			Help: "Total number of units created",
		},
		[]string{"rarity"},
	)

	ItemsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "items_granted_total",
			Help: "Total number of items granted",
		},
		[]string{"rarity", "slot"},
	)

	EquipOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equip_operations_total",
			Help: "Total number of equip and unequip operations",
		},
		[]string{"action"},
	)

	StorageWriteConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storage_write_conflicts_total",
			Help: "Total number of version-checked inventory writes that hit a conflict",
		},
	)
)
