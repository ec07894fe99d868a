package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned when the breaker rejects an attempt.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreaker gates repeated connection attempts against a flapping
// upstream. It opens after maxFailures consecutive failures and allows a probe
// again once cooldown has elapsed; any success closes it.
type CircuitBreaker struct {
	name        string
	maxFailures int
	cooldown    time.Duration

	mu           sync.Mutex
	failures     int
	open         bool
	lastFailTime time.Time
}

// NewCircuitBreaker creates a breaker that opens after maxFailures consecutive
// failures and re-allows attempts after cooldown.
func NewCircuitBreaker(name string, maxFailures int, cooldown time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		name:        name,
		maxFailures: maxFailures,
		cooldown:    cooldown,
	}
}

// Allow reports whether an attempt may proceed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if !cb.open {
		return true
	}
	if time.Since(cb.lastFailTime) > cb.cooldown {
		// Half-open: let one probe through.
		cb.open = false
		cb.failures = cb.maxFailures - 1
		return true
	}
	return false
}

// RecordSuccess closes the breaker and resets the failure count.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures = 0
	cb.open = false
}

// RecordFailure counts a failure. Returns true if the breaker is now open.
func (cb *CircuitBreaker) RecordFailure() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failures++
	cb.lastFailTime = time.Now()
	if cb.failures >= cb.maxFailures {
		cb.open = true
	}
	return cb.open
}

// Failures returns the current consecutive failure count.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

// Name returns the breaker's name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}
