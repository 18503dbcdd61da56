package api

import (
	"errors"
	"sync"
	"time"

	"github.com/andrescamacho/basedbot-go/internal/domain/shared"
)

// CircuitState represents the state of the circuit breaker
type CircuitState int

const (
	// CircuitClosed allows all requests
	CircuitClosed CircuitState = iota
	// CircuitOpen rejects requests until the cool-down elapses
	CircuitOpen
	// CircuitHalfOpen admits a single trial request; others are rejected until it returns
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "closed"
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

var (
	// ErrCircuitOpen is returned when the gateway circuit is open
	ErrCircuitOpen = errors.New("gateway circuit open")
)

// CircuitBreaker stops hammering the gateway after consecutive failures.
// Client errors (4xx) do not count as failures.
type CircuitBreaker struct {
	maxFailures     int
	cooldown        time.Duration
	state           CircuitState
	failures        int
	lastFailureTime time.Time
	trialInFlight   bool
	listener        func(CircuitState)
	mu              sync.Mutex
	clock           shared.Clock
}

// NewCircuitBreaker creates a circuit breaker. If clock is nil, uses RealClock.
func NewCircuitBreaker(maxFailures int, cooldown time.Duration, clock shared.Clock) *CircuitBreaker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CircuitBreaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		state:       CircuitClosed,
		clock:       clock,
	}
}

// OnStateChange registers fn to be called after every state transition
func (cb *CircuitBreaker) OnStateChange(fn func(CircuitState)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.listener = fn
}

// Call runs fn unless the circuit is open. Once the cool-down elapses only
// one caller runs as the half-open trial. The lock is not held while fn
// runs, since fn may sleep through retries.
func (cb *CircuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	trial := false
	switch cb.state {
	case CircuitOpen:
		if cb.clock.Now().Sub(cb.lastFailureTime) < cb.cooldown {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.transition(CircuitHalfOpen)
		trial = true
	case CircuitHalfOpen:
		if cb.trialInFlight {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		trial = true
	}
	if trial {
		cb.trialInFlight = true
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if trial {
		cb.trialInFlight = false
	}
	if err != nil && countsAsFailure(err) {
		cb.recordFailure()
		return err
	}
	cb.recordSuccess()
	return err
}

// countsAsFailure excludes answers that prove the gateway is healthy
func countsAsFailure(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return true
}

func (cb *CircuitBreaker) recordFailure() {
	cb.failures++
	cb.lastFailureTime = cb.clock.Now()

	if cb.state == CircuitHalfOpen || cb.failures >= cb.maxFailures {
		cb.transition(CircuitOpen)
	}
}

func (cb *CircuitBreaker) recordSuccess() {
	cb.failures = 0
	if cb.state != CircuitClosed {
		cb.transition(CircuitClosed)
	}
}

// transition must be called with mu held
func (cb *CircuitBreaker) transition(state CircuitState) {
	if cb.state == state {
		return
	}
	cb.state = state
	if cb.listener != nil {
		cb.listener(state)
	}
}

// State returns the current circuit state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Failures returns the current consecutive failure count
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

// Reset closes the circuit
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.trialInFlight = false
	cb.transition(CircuitClosed)
}
