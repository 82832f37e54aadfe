package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registered once at package load; a process typically holds one Client per
// token, and per-instance registration would collide on the default registry.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "starling_client_requests_total",
		Help: "API requests issued, by HTTP method and response code.",
	}, []string{"method", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "starling_client_request_duration_seconds",
		Help:    "API request latency, by HTTP method.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)

// observeRequest records one completed round trip. A code of 0 means the
// request never produced a response (network failure or timeout).
func observeRequest(method string, code int, elapsed time.Duration) {
	label := "error"
	if code != 0 {
		label = strconv.Itoa(code)
	}
	requestsTotal.WithLabelValues(method, label).Inc()
	requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}
