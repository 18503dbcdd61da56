package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// GatewayMetricsCollector handles SAGE gateway request metrics.
// It satisfies api.RequestRecorder.
type GatewayMetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retries         *prometheus.CounterVec
	rateLimitWait   *prometheus.HistogramVec
	circuitOpen     prometheus.Gauge
}

// NewGatewayMetricsCollector creates a new gateway metrics collector
func NewGatewayMetricsCollector() *GatewayMetricsCollector {
	return &GatewayMetricsCollector{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "requests_total",
				Help:      "Gateway requests by method, endpoint and status code",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		// Action endpoints block until the transaction is confirmed, so
		// buckets reach well past typical HTTP latencies
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "request_duration_seconds",
				Help:      "Gateway request duration distribution",
				Buckets:   []float64{0.05, 0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{"method", "endpoint"},
		),

		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "retries_total",
				Help:      "Gateway retry attempts by reason",
			},
			[]string{"method", "endpoint", "reason"},
		),

		rateLimitWait: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "rate_limit_wait_seconds",
				Help:      "Time spent waiting for the rate limiter",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1.0, 2.0, 5.0},
			},
			[]string{"method", "endpoint"},
		),

		circuitOpen: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "gateway",
				Name:      "circuit_open",
				Help:      "1 while the gateway circuit breaker is open",
			},
		),
	}
}

// Register registers all gateway metrics with the Prometheus registry
func (c *GatewayMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.requestsTotal,
		c.requestDuration,
		c.retries,
		c.rateLimitWait,
		c.circuitOpen,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordRequest records a completed gateway request
func (c *GatewayMetricsCollector) RecordRequest(method, endpoint string, statusCode int, duration float64) {
	c.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordRetry records a retry attempt
func (c *GatewayMetricsCollector) RecordRetry(method, endpoint, reason string) {
	c.retries.WithLabelValues(method, endpoint, reason).Inc()
}

// RecordRateLimitWait records time spent waiting for the rate limiter
func (c *GatewayMetricsCollector) RecordRateLimitWait(method, endpoint string, duration float64) {
	c.rateLimitWait.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordCircuitState records whether the circuit breaker is open
func (c *GatewayMetricsCollector) RecordCircuitState(open bool) {
	if open {
		c.circuitOpen.Set(1)
		return
	}
	c.circuitOpen.Set(0)
}
