package config

import "time"

// MetricsConfig holds metrics collection configuration. Metrics are served
// by the status server.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Path for the metrics endpoint (default: /metrics)
	Path string `mapstructure:"path" yaml:"path"`

	// How often the fleets-by-state gauge is refreshed
	UpdateInterval time.Duration `mapstructure:"update_interval" yaml:"update_interval"`
}
