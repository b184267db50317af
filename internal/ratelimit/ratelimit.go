// Package ratelimit budgets summary-generation requests so a runaway
// session cannot burn through the daily AI quota.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Budget counts requests against a per-window cap. A cap of zero means
// unlimited.
type Budget struct {
	mu        sync.Mutex
	used      int
	max       int
	window    time.Duration
	resetTime time.Time
}

func NewBudget(max int, window time.Duration) *Budget {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &Budget{
		max:       max,
		window:    window,
		resetTime: time.Now().Add(window),
	}
}

// Allow reports whether another request fits in the current window.
func (b *Budget) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()
	return b.max <= 0 || b.used < b.max
}

// Use consumes one request from the budget.
func (b *Budget) Use() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()
	if b.max > 0 && b.used >= b.max {
		return fmt.Errorf("summary request budget exhausted (%d/%d)", b.used, b.max)
	}
	b.used++
	return nil
}

// Remaining returns how many requests are left in the window; -1 when
// unlimited.
func (b *Budget) Remaining() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()
	if b.max <= 0 {
		return -1
	}
	return b.max - b.used
}

func (b *Budget) checkReset() {
	if time.Now().After(b.resetTime) {
		b.used = 0
		b.resetTime = time.Now().Add(b.window)
	}
}
