package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "basedbot"
	// Subsystem for bot metrics
	subsystem = "bot"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalFleetCollector is the singleton fleet metrics collector.
	// Set by SetGlobalFleetCollector() when metrics are enabled.
	globalFleetCollector FleetMetricsRecorder
)

// FleetMetricsRecorder records per-tick fleet decisions and cycle outcomes
type FleetMetricsRecorder interface {
	RecordDecision(fleetName, strategyName, reason string, actions []string, failed bool)
	RecordCycle(duration time.Duration, fleets, failures int)
}

// InitRegistry initializes the Prometheus registry.
// Called once at startup when metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global registry, nil when metrics are disabled
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalFleetCollector sets the global fleet metrics collector
func SetGlobalFleetCollector(collector FleetMetricsRecorder) {
	globalFleetCollector = collector
}

// RecordDecision records one fleet tick globally
func RecordDecision(fleetName, strategyName, reason string, actions []string, failed bool) {
	if globalFleetCollector != nil {
		globalFleetCollector.RecordDecision(fleetName, strategyName, reason, actions, failed)
	}
}

// RecordCycle records one completed fleet cycle globally
func RecordCycle(duration time.Duration, fleets, failures int) {
	if globalFleetCollector != nil {
		globalFleetCollector.RecordCycle(duration, fleets, failures)
	}
}
