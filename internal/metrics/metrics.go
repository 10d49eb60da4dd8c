package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Record store
	RecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_records_total",
			Help: "Successful record writes",
		},
		[]string{"kind", "op"}, // transaction|profile, create|update|complete|increment
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_store_errors_total",
			Help: "Failed record store calls, including ones hidden from callers",
		},
		[]string{"op"},
	)

	// Chain
	ChainPayloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_chain_payloads_total",
			Help: "Built chain transaction payloads",
		},
		[]string{"function", "mode"}, // mode: live|demo
	)
	ChainReadErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escrow_chain_read_errors_total",
			Help: "Failed fullnode reads",
		},
		[]string{"op"},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)

	initOnce sync.Once
)

// Handler serves /metrics.
var Handler = promhttp.Handler

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			RequestsTotal,
			RequestLatency,
			RecordsTotal,
			StoreErrors,
			ChainPayloads,
			ChainReadErrors,
			WorkerQueueDepth,
		)
	})
}
