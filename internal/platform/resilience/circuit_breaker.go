package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned by Allow while the breaker is rejecting
// calls.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker shields the fixture provider from repeated calls while
// it is failing. Consecutive failures trip it open; once the open timeout
// elapses a limited number of trial calls decide whether it closes again.
type CircuitBreaker struct {
	mu sync.Mutex

	failureLimit int
	openTimeout  time.Duration
	trialQuota   int

	state        CircuitState
	failures     int
	openedAt     time.Time
	trialsActive int
	trialsPassed int
	clock        func() time.Time
}

func NewCircuitBreaker(failureLimit int, openTimeout time.Duration, trialQuota int) *CircuitBreaker {
	if failureLimit < 1 {
		failureLimit = 1
	}
	if openTimeout <= 0 {
		openTimeout = 15 * time.Second
	}
	if trialQuota < 1 {
		trialQuota = 1
	}

	return &CircuitBreaker{
		failureLimit: failureLimit,
		openTimeout:  openTimeout,
		trialQuota:   trialQuota,
		state:        CircuitStateClosed,
		clock:        time.Now,
	}
}

// Allow reports whether a call may proceed, reserving a trial slot when
// the breaker is half open.
func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen {
		if !b.cooledDown() {
			return ErrCircuitOpen
		}
		b.enterHalfOpen()
	}

	if b.state == CircuitStateHalfOpen {
		if b.trialsActive >= b.trialQuota {
			return ErrCircuitOpen
		}
		b.trialsActive++
	}

	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failures = 0
	case CircuitStateHalfOpen:
		b.releaseTrial()
		b.trialsPassed++
		if b.trialsPassed >= b.trialQuota && b.trialsActive == 0 {
			b.reset()
		}
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.failureLimit {
			b.trip()
		}
	case CircuitStateHalfOpen:
		// A failed trial call reopens the breaker and restarts the timeout.
		b.releaseTrial()
		b.trip()
	case CircuitStateOpen:
		b.openedAt = b.clock()
	}
}

// State reports the effective state, accounting for an elapsed open
// timeout that Allow has not observed yet.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.cooledDown() {
		return CircuitStateHalfOpen
	}
	return b.state
}

func (b *CircuitBreaker) cooledDown() bool {
	return b.clock().Sub(b.openedAt) >= b.openTimeout
}

func (b *CircuitBreaker) releaseTrial() {
	if b.trialsActive > 0 {
		b.trialsActive--
	}
}

func (b *CircuitBreaker) reset() {
	b.state = CircuitStateClosed
	b.failures = 0
	b.trialsActive = 0
	b.trialsPassed = 0
	b.openedAt = time.Time{}
}

func (b *CircuitBreaker) trip() {
	b.state = CircuitStateOpen
	b.openedAt = b.clock()
	b.trialsActive = 0
	b.trialsPassed = 0
}

func (b *CircuitBreaker) enterHalfOpen() {
	b.state = CircuitStateHalfOpen
	b.trialsActive = 0
	b.trialsPassed = 0
}
