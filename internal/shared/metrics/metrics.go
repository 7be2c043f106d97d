// Package metrics holds the Prometheus collectors shared by the gateway,
// the domain services and the event publishers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "catalog"

var (
	// HTTPRequestsTotal counts gateway requests by route template and status
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests handled by the gateway",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RPCCallDuration is observed by the client for every call, code is the
	// resulting status code ("OK" on success)
	RPCCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "call_duration_seconds",
		Help:      "Backend RPC call latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"service", "method", "code"})

	RPCServedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "rpc",
		Name:      "served_total",
		Help:      "Total number of RPC requests answered by a domain service",
	}, []string{"service", "method", "code"})

	// EventsPublishedTotal counts publish attempts, result is ok or error
	EventsPublishedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Total number of domain events published",
	}, []string{"driver", "topic", "result"})

	EventsConsumedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "events",
		Name:      "consumed_total",
		Help:      "Total number of domain events received by the consumer",
	}, []string{"topic", "result"})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RPCCallDuration,
		RPCServedTotal,
		EventsPublishedTotal,
		EventsConsumedTotal,
	)
}

// Result converts an error into the label value used by the counters
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
