package config

import "time"

// GatewayConfig holds the SAGE gateway client configuration
type GatewayConfig struct {
	// Base URL of the gateway sidecar
	BaseURL string `mapstructure:"base_url" yaml:"base_url" validate:"required,url"`

	// API key sent as bearer token; usually set through BASEDBOT_GATEWAY_API_KEY
	APIKey string `mapstructure:"api_key" yaml:"api_key,omitempty"`

	// Request timeout. Actions block until confirmation, so keep it generous.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"required"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`

	Retry RetryConfig `mapstructure:"retry" yaml:"retry"`

	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker" yaml:"circuit_breaker"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" yaml:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" yaml:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts" validate:"min=0"`
	BackoffBase time.Duration `mapstructure:"backoff_base" yaml:"backoff_base"`
}

// CircuitBreakerConfig controls when the client stops calling a failing gateway
type CircuitBreakerConfig struct {
	MaxFailures int           `mapstructure:"max_failures" yaml:"max_failures" validate:"min=1"`
	Cooldown    time.Duration `mapstructure:"cooldown" yaml:"cooldown"`
}
