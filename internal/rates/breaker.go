package rates

import (
	"fmt"
	"sync"
	"time"
)

// BreakerState is the current state of a rate-source circuit breaker.
type BreakerState int

const (
	// BreakerClosed lets fetches through and counts failures.
	BreakerClosed BreakerState = iota
	// BreakerOpen rejects fetches until the cooldown passes.
	BreakerOpen
	// BreakerHalfOpen lets probe fetches through after the cooldown.
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
	default:
		return "unknown"
	}
}

// Breaker guards one upstream rate source. Consecutive failures trip it
// open; after the cooldown a probe fetch decides whether it closes again.
// Safe for concurrent use.
type Breaker struct {
	mu               sync.Mutex
	state            BreakerState
	failures         int
	failureThreshold int
	cooldown         time.Duration
	openedAt         time.Time
}

// NewBreaker creates a breaker that opens after failureThreshold
// consecutive failures and probes again after cooldown.
func NewBreaker(failureThreshold int, cooldown time.Duration) *Breaker {
	if failureThreshold < 1 {
		failureThreshold = 3
	}
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &Breaker{failureThreshold: failureThreshold, cooldown: cooldown}
}

// Allow reports whether a fetch may proceed.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerOpen {
		if time.Since(b.openedAt) <= b.cooldown {
			return fmt.Errorf("rate source circuit is open")
		}
		b.state = BreakerHalfOpen
	}
	return nil
}

// RecordSuccess closes the breaker and resets the failure count.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = BreakerClosed
	b.failures = 0
}

// RecordFailure counts a failed fetch. A failure during a half-open probe
// reopens immediately.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == BreakerHalfOpen {
		b.state = BreakerOpen
		b.openedAt = time.Now()
		return
	}
	b.failures++
	if b.failures >= b.failureThreshold {
		b.state = BreakerOpen
		b.openedAt = time.Now()
	}
}

// State returns the current state, advancing Open to HalfOpen when the
// cooldown has passed.
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BreakerOpen && time.Since(b.openedAt) > b.cooldown {
		b.state = BreakerHalfOpen
	}
	return b.state
}
