package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var requestBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0}

// APIMetricsCollector covers the HTTP surface and the websocket event stream
type APIMetricsCollector struct {
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	rateLimited *prometheus.CounterVec

	streamClients prometheus.Gauge
	broadcasts    *prometheus.CounterVec
}

func NewAPIMetricsCollector() *APIMetricsCollector {
	return &APIMetricsCollector{
		requests: counterVec(apiSubsystem, "requests_total",
			"Total number of HTTP API requests by method, endpoint, and status code", "method", "endpoint", "status_code"),
		latency: histogramVec(apiSubsystem, "request_duration_seconds",
			"HTTP API request duration distribution", requestBuckets, "method", "endpoint"),
		rateLimited: counterVec(apiSubsystem, "rate_limited_total",
			"Total number of HTTP API requests rejected by the rate limiter", "endpoint"),
		streamClients: gauge(apiSubsystem, "event_stream_clients",
			"Number of connected websocket event stream clients"),
		broadcasts: counterVec(apiSubsystem, "events_broadcast_total",
			"Total number of game events broadcast to the event stream", "event"),
	}
}

func (c *APIMetricsCollector) Register() error {
	return register(c.requests, c.latency, c.rateLimited, c.streamClients, c.broadcasts)
}

// RecordAPIRequest counts a finished request
func (c *APIMetricsCollector) RecordAPIRequest(method string, endpoint string, statusCode int, duration float64) {
	c.requests.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	c.latency.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordRateLimited counts a request answered with 429
func (c *APIMetricsCollector) RecordRateLimited(endpoint string) {
	c.rateLimited.WithLabelValues(endpoint).Inc()
}

func (c *APIMetricsCollector) SetEventStreamClients(count int) {
	c.streamClients.Set(float64(count))
}

func (c *APIMetricsCollector) RecordEventBroadcast(event string) {
	c.broadcasts.WithLabelValues(event).Inc()
}
