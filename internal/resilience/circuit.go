package resilience

import (
	"context"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned when a call is rejected without running because
// the breaker has tripped. Callers treat it like any other lookup failure and
// move on to the next registry.
var ErrCircuitOpen = eris.New("resilience: circuit open")

// CircuitState is the breaker's position: closed passes calls through, open
// rejects them, half-open lets probes through to test recovery.
type CircuitState int

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// CircuitBreakerConfig tunes when the breaker trips and how it recovers.
type CircuitBreakerConfig struct {
	// FailureThreshold consecutive failures open the circuit.
	FailureThreshold int
	// SuccessThreshold consecutive half-open successes close it again.
	SuccessThreshold int
	// OpenTimeout is how long the circuit stays open before probing.
	OpenTimeout time.Duration
}

// DefaultCircuitBreakerConfig trips after five straight failures and probes
// again after thirty seconds. Registry outages tend to last minutes, so a
// short open window keeps fallback latency low without hammering a down host.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      30 * time.Second,
	}
}

// CircuitBreaker sheds load from an upstream that is failing consistently.
// Safe for concurrent use.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig

	mu        sync.Mutex
	state     CircuitState
	failures  int
	successes int
	openedAt  time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = 1
	}
	if cfg.SuccessThreshold < 1 {
		cfg.SuccessThreshold = 1
	}
	return &CircuitBreaker{cfg: cfg}
}

// Execute runs fn unless the circuit is open. fn's error is returned
// unchanged so callers can still classify it.
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if !b.allow() {
		return ErrCircuitOpen
	}

	err := fn(ctx)
	b.record(err == nil)
	return err
}

// State returns the breaker's current position, advancing open to half-open
// if the open window has elapsed.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advanceLocked()
	return b.state
}

// Reset forces the breaker closed, discarding all counts.
func (b *CircuitBreaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failures = 0
	b.successes = 0
}

func (b *CircuitBreaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advanceLocked()
	return b.state != StateOpen
}

// advanceLocked moves open to half-open once OpenTimeout has passed.
func (b *CircuitBreaker) advanceLocked() {
	if b.state == StateOpen && time.Since(b.openedAt) >= b.cfg.OpenTimeout {
		b.state = StateHalfOpen
		b.successes = 0
	}
}

func (b *CircuitBreaker) record(ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ok {
		b.failures = 0
		if b.state == StateHalfOpen {
			if b.successes++; b.successes >= b.cfg.SuccessThreshold {
				b.state = StateClosed
				zap.L().Info("circuit closed after recovery")
			}
		}
		return
	}

	switch b.state {
	case StateHalfOpen:
		// A failed probe reopens immediately.
		b.trip()
	case StateClosed:
		if b.failures++; b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	}
}

func (b *CircuitBreaker) trip() {
	b.state = StateOpen
	b.openedAt = time.Now()
	b.failures = 0
	b.successes = 0
	zap.L().Warn("circuit opened", zap.Duration("retry_after", b.cfg.OpenTimeout))
}
