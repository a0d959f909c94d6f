package figma

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	upstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "figma_upstream_requests_total",
		Help: "Requests sent to the Figma REST API, by status code and method.",
	}, []string{"code", "method"})

	upstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "figma_upstream_request_duration_seconds",
		Help:    "Latency of Figma REST API requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"code", "method"})
)

// InstrumentedTransport records request counts and latency of every call
// made through next.
func InstrumentedTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(upstreamRequests,
		promhttp.InstrumentRoundTripperDuration(upstreamDuration, next))
}
