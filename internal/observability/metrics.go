package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "catalog_api_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// CacheHits tracks cache hits/misses
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_api_cache_hits_total",
			Help: "Number of cache hits",
		},
		[]string{"operation"},
	)

	// DatabaseOperations tracks database operations
	DatabaseOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_api_database_operations_total",
			Help: "Number of database operations",
		},
		[]string{"operation", "status"},
	)

	// CatalogueQueries tracks assembled catalogue pages
	CatalogueQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_api_catalogue_queries_total",
			Help: "Number of catalogue page queries",
		},
		[]string{"rubric", "status"},
	)

	// SearchRequests tracks keyword search collaborator calls
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_api_search_requests_total",
			Help: "Number of keyword search requests",
		},
		[]string{"status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_api_active_connections",
			Help: "Number of active connections",
		},
	)
)
