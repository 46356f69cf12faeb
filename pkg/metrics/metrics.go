package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "deardiary", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "deardiary", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "deardiary", Subsystem: "store", Name: "operations_total", Help: "Document store operations by collection, operation and outcome."},
		[]string{"collection", "op", "outcome"},
	)
	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "deardiary", Subsystem: "store", Name: "operation_seconds", Help: "Document store round-trip latency.", Buckets: prometheus.DefBuckets},
		[]string{"collection", "op"},
	)
	ExportsRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "deardiary", Name: "exports_total", Help: "Exports by format and status."},
		[]string{"format", "status"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(StoreOperations)
	reg.MustRegister(StoreLatency)
	reg.MustRegister(ExportsRendered)
}
