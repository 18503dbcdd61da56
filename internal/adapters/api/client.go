package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/basedbot-go/internal/application/common"
	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

const (
	defaultTimeout     = 90 * time.Second
	defaultMaxRetries  = 3
	defaultBackoffBase = time.Second
	defaultRateLimit   = 5
	defaultRateBurst   = 5
)

var (
	// ErrNotFound is returned when the gateway answers 404
	ErrNotFound = errors.New("not found")
)

// APIError is a non-retryable gateway error response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// RequestRecorder receives request telemetry. Implemented by the metrics
// adapter; nil disables recording.
type RequestRecorder interface {
	RecordRequest(method, endpoint string, statusCode int, duration float64)
	RecordRetry(method, endpoint, reason string)
	RecordRateLimitWait(method, endpoint string, duration float64)
	RecordCircuitState(open bool)
}

// ClientConfig tunes the gateway client. Zero values fall back to defaults.
type ClientConfig struct {
	BaseURL            string
	APIKey             string
	Timeout            time.Duration
	MaxRetries         int
	BackoffBase        time.Duration
	RateLimit          float64 // requests per second
	RateBurst          int
	CircuitMaxFailures int
	CircuitTimeout     time.Duration
}

// GatewayClient talks to the SAGE gateway, the sidecar that owns the wallet
// and builds, signs and confirms game transactions.
//
// It implements world.Source, fleet.FleetReader, player.GameReader,
// player.StarbasePlayerResolver, common.FleetActions and common.BalanceReader.
type GatewayClient struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	breaker     *CircuitBreaker
	baseURL     string
	apiKey      string
	maxRetries  int
	backoffBase time.Duration
	clock       shared.Clock
	recorder    RequestRecorder
}

// NewGatewayClient creates a gateway client.
// If clock is nil, uses RealClock; recorder may be nil.
func NewGatewayClient(cfg ClientConfig, clock shared.Clock, recorder RequestRecorder) *GatewayClient {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = defaultBackoffBase
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = defaultRateBurst
	}
	if cfg.CircuitMaxFailures <= 0 {
		cfg.CircuitMaxFailures = 5
	}
	if cfg.CircuitTimeout <= 0 {
		cfg.CircuitTimeout = 30 * time.Second
	}

	c := &GatewayClient{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst),
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		maxRetries:  cfg.MaxRetries,
		backoffBase: cfg.BackoffBase,
		clock:       clock,
		recorder:    recorder,
	}
	c.breaker = NewCircuitBreaker(cfg.CircuitMaxFailures, cfg.CircuitTimeout, clock)
	if recorder != nil {
		c.breaker.OnStateChange(func(state CircuitState) {
			recorder.RecordCircuitState(state == CircuitOpen)
		})
	}
	return c
}

// Breaker exposes the circuit breaker for health reporting
func (c *GatewayClient) Breaker() *CircuitBreaker {
	return c.breaker
}

// requestKind decides which failures may be retried
type requestKind int

const (
	// readRequest retries network errors, 429 and 5xx
	readRequest requestKind = iota
	// actionRequest submits a transaction; only answers that guarantee
	// nothing was submitted (429, 503) are retried
	actionRequest
)

// envelope wraps every gateway response
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// get issues a read request and decodes the data field into result
func (c *GatewayClient) get(ctx context.Context, endpoint, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, endpoint, path, nil, result, readRequest)
}

// post submits an action and waits for its confirmation
func (c *GatewayClient) post(ctx context.Context, endpoint, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, endpoint, path, body, result, actionRequest)
}

func (c *GatewayClient) do(
	ctx context.Context,
	method, endpoint, path string,
	body, result interface{},
	kind requestKind,
) error {
	return c.breaker.Call(func() error {
		return c.request(ctx, method, endpoint, path, body, result, kind)
	})
}

// addJitter returns a duration between 50% and 150% of d
func addJitter(d time.Duration) time.Duration {
	jitter := 0.5 + rand.Float64()
	return time.Duration(float64(d) * jitter)
}

// request makes an HTTP request with rate limiting and exponential backoff retries
func (c *GatewayClient) request(
	ctx context.Context,
	method, endpoint, path string,
	body, result interface{},
	kind requestKind,
) error {
	logger := common.LoggerFromContext(ctx)
	url := c.baseURL + path

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var lastErr error

retry:
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		waitStart := time.Now()
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}
		if c.recorder != nil {
			c.recorder.RecordRateLimitWait(method, endpoint, time.Since(waitStart).Seconds())
		}

		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("context cancelled: %w", ctx.Err())
			}
			lastErr = &retryableError{message: fmt.Errorf("network error: %w", err).Error()}
			// An action may have reached the gateway before the connection dropped
			if kind == actionRequest {
				return lastErr
			}
			if !c.backoff(ctx, method, endpoint, attempt, "network", 0) {
				break retry
			}
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if c.recorder != nil {
			c.recorder.RecordRequest(method, endpoint, resp.StatusCode, time.Since(start).Seconds())
		}
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			var retryAfter time.Duration
			if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
			lastErr = &retryableError{message: "rate limited (429)", retryAfter: retryAfter}
			logger.Log(common.LevelDebug, fmt.Sprintf("Gateway rate limited %s %s, attempt %d", method, endpoint, attempt+1), nil)
			if !c.backoff(ctx, method, endpoint, attempt, "rate_limited", retryAfter) {
				break retry
			}
			continue

		case resp.StatusCode == http.StatusServiceUnavailable:
			lastErr = &retryableError{message: "service unavailable (503)"}
			if !c.backoff(ctx, method, endpoint, attempt, "unavailable", 0) {
				break retry
			}
			continue

		case resp.StatusCode >= 500:
			if kind == actionRequest {
				return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
			}
			lastErr = &retryableError{message: fmt.Sprintf("server error (%d)", resp.StatusCode)}
			if !c.backoff(ctx, method, endpoint, attempt, "server_error", 0) {
				break retry
			}
			continue

		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
		}

		if result == nil {
			return nil
		}

		var env envelope
		if err := json.Unmarshal(respBody, &env); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return fmt.Errorf("empty response data")
		}
		if err := json.Unmarshal(env.Data, result); err != nil {
			return fmt.Errorf("failed to unmarshal response data: %w", err)
		}
		return nil
	}

	if lastErr != nil {
		return fmt.Errorf("max retries exceeded: %w", lastErr)
	}
	return fmt.Errorf("max retries exceeded")
}

// backoff sleeps before the next attempt. It returns false when no attempt
// is left or the context is done.
func (c *GatewayClient) backoff(ctx context.Context, method, endpoint string, attempt int, reason string, retryAfter time.Duration) bool {
	if attempt >= c.maxRetries || ctx.Err() != nil {
		return false
	}
	if c.recorder != nil {
		c.recorder.RecordRetry(method, endpoint, reason)
	}

	delay := addJitter(c.backoffBase * time.Duration(1<<attempt))
	if retryAfter > 0 {
		delay = retryAfter
	}
	c.clock.Sleep(delay)
	return true
}

func errorMessage(body []byte) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		if env.Error.Code != "" {
			return env.Error.Code + ": " + env.Error.Message
		}
		return env.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// retryableError represents an error that should trigger a retry
type retryableError struct {
	message    string
	retryAfter time.Duration
}

func (e *retryableError) Error() string {
	return e.message
}
