package infra

import (
	"errors"
	"sync"
	"time"
)

// BreakerState is the position of a Breaker: closed lets calls through,
// open rejects them, half-open lets calls probe the dependency again.
type BreakerState int

const (
	BreakerClosed BreakerState = iota
	BreakerOpen
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// ErrBreakerOpen is returned by Do while the breaker rejects calls.
var ErrBreakerOpen = errors.New("circuit breaker is open")

type BreakerConfig struct {
	MaxFailures  int           // consecutive failures that open the breaker
	Successes    int           // half-open successes needed to close again
	OpenDuration time.Duration // time spent open before probing
}

// Breaker short-circuits calls to an optional dependency (the Redis cache)
// after MaxFailures consecutive errors.
type Breaker struct {
	cfg BreakerConfig
	now func() time.Time

	mu        sync.Mutex
	state     BreakerState
	failures  int
	successes int
	openedAt  time.Time
}

func NewBreaker(cfg BreakerConfig) *Breaker {
	if cfg.MaxFailures <= 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Successes <= 0 {
		cfg.Successes = 1
	}
	if cfg.OpenDuration <= 0 {
		cfg.OpenDuration = 30 * time.Second
	}
	return &Breaker{cfg: cfg, now: time.Now}
}

// State reports the current state, moving open → half-open once
// OpenDuration has elapsed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentLocked()
}

func (b *Breaker) currentLocked() BreakerState {
	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenDuration {
		b.state = BreakerHalfOpen
		b.successes = 0
	}
	return b.state
}

// Do runs fn unless the breaker is open, and records its outcome.
func (b *Breaker) Do(fn func() error) error {
	b.mu.Lock()
	if b.currentLocked() == BreakerOpen {
		b.mu.Unlock()
		return ErrBreakerOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.recordFailureLocked()
	} else {
		b.recordSuccessLocked()
	}
	return err
}

func (b *Breaker) recordFailureLocked() {
	b.failures++
	if b.state == BreakerHalfOpen || b.failures >= b.cfg.MaxFailures {
		b.state = BreakerOpen
		b.openedAt = b.now()
		b.failures = 0
		b.successes = 0
	}
}

func (b *Breaker) recordSuccessLocked() {
	b.failures = 0
	if b.state != BreakerHalfOpen {
		return
	}
	b.successes++
	if b.successes >= b.cfg.Successes {
		b.state = BreakerClosed
		b.successes = 0
	}
}
