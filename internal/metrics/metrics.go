// Package metrics - счётчики Prometheus для внешних геосервисов и экрана карты
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExternalRequests - запросы к геокодеру и провайдеру маршрутов по исходу (success, not_found, failure, rejected)
	ExternalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelmap_external_requests_total",
			Help: "Requests to external geo services by outcome",
		},
		[]string{"service", "outcome"},
	)

	ExternalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "travelmap_external_request_duration_seconds",
			Help:    "Latency of external geo service requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	// CircuitBreakerState - 0 закрыт, 1 полуоткрыт, 2 открыт
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "travelmap_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelmap_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	DroppedMarkers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "travelmap_dropped_markers_total",
		Help: "Markers excluded from rendering because of malformed coordinates",
	})

	StaleResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "travelmap_stale_responses_total",
			Help: "Async responses discarded because a newer request superseded them",
		},
		[]string{"resource"},
	)

	MapSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "travelmap_map_sessions",
		Help: "Open map screen sessions",
	})

	KafkaConsumerLag = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "travelmap_kafka_consumer_lag",
		Help: "Total consumer group lag across location and marker topics",
	})
)
