package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "basedbot.db"
	}
	if cfg.Database.Type == "postgres" {
		if cfg.Database.Host == "" {
			cfg.Database.Host = "localhost"
		}
		if cfg.Database.Port == 0 {
			cfg.Database.Port = 5432
		}
		if cfg.Database.User == "" {
			cfg.Database.User = "basedbot"
		}
		if cfg.Database.Name == "" {
			cfg.Database.Name = "basedbot"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Gateway defaults
	if cfg.Gateway.BaseURL == "" {
		cfg.Gateway.BaseURL = "http://localhost:8899"
	}
	if cfg.Gateway.Timeout == 0 {
		cfg.Gateway.Timeout = 90 * time.Second
	}
	if cfg.Gateway.RateLimit.Requests == 0 {
		cfg.Gateway.RateLimit.Requests = 5
	}
	if cfg.Gateway.RateLimit.Burst == 0 {
		cfg.Gateway.RateLimit.Burst = 5
	}
	if cfg.Gateway.Retry.MaxAttempts == 0 {
		cfg.Gateway.Retry.MaxAttempts = 3
	}
	if cfg.Gateway.Retry.BackoffBase == 0 {
		cfg.Gateway.Retry.BackoffBase = 1 * time.Second
	}
	if cfg.Gateway.CircuitBreaker.MaxFailures == 0 {
		cfg.Gateway.CircuitBreaker.MaxFailures = 5
	}
	if cfg.Gateway.CircuitBreaker.Cooldown == 0 {
		cfg.Gateway.CircuitBreaker.Cooldown = 30 * time.Second
	}

	// Bot defaults
	if cfg.Bot.CycleInterval == 0 {
		cfg.Bot.CycleInterval = 60 * time.Second
	}
	for i := range cfg.Bot.Routes {
		if cfg.Bot.Routes[i].Goal == "" {
			cfg.Bot.Routes[i].Goal = "transport"
		}
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.UpdateInterval == 0 {
		cfg.Metrics.UpdateInterval = 15 * time.Second
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/basedbot.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}
}
