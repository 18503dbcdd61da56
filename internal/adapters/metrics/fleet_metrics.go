package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// FleetMetricsCollector handles decision, cycle and fleet state metrics
type FleetMetricsCollector struct {
	// getStates returns the last observed state per fleet name
	getStates func() map[string]string

	decisionsTotal     *prometheus.CounterVec
	actionsTotal       *prometheus.CounterVec
	cycleDuration      prometheus.Histogram
	cyclesTotal        *prometheus.CounterVec
	fleetFailures      prometheus.Gauge
	lastCycleTimestamp prometheus.Gauge
	fleetsByState      *prometheus.GaugeVec

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewFleetMetricsCollector creates a new fleet metrics collector.
// getStates may be nil, in which case the state gauge is never polled.
func NewFleetMetricsCollector(getStates func() map[string]string) *FleetMetricsCollector {
	return &FleetMetricsCollector{
		getStates: getStates,

		decisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "decisions_total",
				Help:      "Fleet ticks by strategy, decision reason and outcome",
			},
			[]string{"fleet", "strategy", "reason", "status"},
		),

		actionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "actions_total",
				Help:      "Fleet actions issued to the gateway by kind",
			},
			[]string{"fleet", "action"},
		),

		cycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cycle_duration_seconds",
				Help:      "Duration of one full fleet cycle",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
			},
		),

		cyclesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cycles_total",
				Help:      "Completed fleet cycles by outcome",
			},
			[]string{"status"},
		),

		fleetFailures: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cycle_fleet_failures",
				Help:      "Fleets whose tick failed in the last cycle",
			},
		),

		lastCycleTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "last_cycle_timestamp_seconds",
				Help:      "Unix time the last fleet cycle finished",
			},
		),

		fleetsByState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fleets_by_state",
				Help:      "Number of fleets in each observed state",
			},
			[]string{"state"},
		),
	}
}

// Register registers all fleet metrics with the Prometheus registry
func (c *FleetMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	collectors := []prometheus.Collector{
		c.decisionsTotal,
		c.actionsTotal,
		c.cycleDuration,
		c.cyclesTotal,
		c.fleetFailures,
		c.lastCycleTimestamp,
		c.fleetsByState,
	}

	for _, collector := range collectors {
		if err := Registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// Start polls fleet states every interval until Stop or ctx cancellation
func (c *FleetMetricsCollector) Start(ctx context.Context, interval time.Duration) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)
	if c.getStates == nil {
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-c.ctx.Done():
				return
			case <-ticker.C:
				c.updateFleetStates()
			}
		}
	}()
}

// Stop gracefully stops state polling
func (c *FleetMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *FleetMetricsCollector) updateFleetStates() {
	counts := make(map[string]int)
	for _, state := range c.getStates() {
		counts[state]++
	}

	c.fleetsByState.Reset()
	for state, n := range counts {
		c.fleetsByState.WithLabelValues(state).Set(float64(n))
	}
}

// RecordDecision records one fleet tick and every action it issued
func (c *FleetMetricsCollector) RecordDecision(fleetName, strategyName, reason string, actions []string, failed bool) {
	status := "success"
	if failed {
		status = "error"
	}

	c.decisionsTotal.WithLabelValues(fleetName, strategyName, reason, status).Inc()
	for _, action := range actions {
		c.actionsTotal.WithLabelValues(fleetName, action).Inc()
	}
}

// RecordCycle records one completed fleet cycle
func (c *FleetMetricsCollector) RecordCycle(duration time.Duration, fleets, failures int) {
	status := "success"
	if failures > 0 {
		status = "partial"
		if failures == fleets {
			status = "error"
		}
	}

	c.cycleDuration.Observe(duration.Seconds())
	c.cyclesTotal.WithLabelValues(status).Inc()
	c.fleetFailures.Set(float64(failures))
	c.lastCycleTimestamp.SetToCurrentTime()
}
