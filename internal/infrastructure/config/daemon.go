package config

import "time"

// DaemonConfig holds settings of the long-running `run` command
type DaemonConfig struct {
	// PID file guarding against two bots driving the same fleets
	PIDFile string `mapstructure:"pid_file" yaml:"pid_file"`

	// Address of the status server (/healthz, /metrics, /fleets); empty disables it
	StatusAddress string `mapstructure:"status_address" yaml:"status_address"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" validate:"required"`
}
