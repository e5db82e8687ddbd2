// Package retry holds the retry policy applied to flaky vendor calls. The
// policy is injected into use cases so tests can swap the sleep function for a
// no-op instead of waiting out real backoff delays.
package retry

import "time"

// Policy describes how many attempts a call gets and how long to wait between
// them. The delay after a failed attempt n (0-based) is Interval * Base^n,
// so Base=2 with a 1s interval yields 1s, 2s, 4s. Base 0 disables waiting,
// which is how the dispatch path retries immediately.
type Policy struct {
	MaxAttempts int
	Base        int
	Interval    time.Duration
	Sleep       func(time.Duration)
}

// Default backoff used against the enrichment API: 3 attempts, 2^n seconds.
func DefaultEnrichment() Policy {
	return Policy{MaxAttempts: 3, Base: 2, Interval: time.Second, Sleep: time.Sleep}
}

// Dispatch gives each recipient 2 immediate attempts, no backoff.
func DefaultDispatch() Policy {
	return Policy{MaxAttempts: 2, Sleep: time.Sleep}
}

// Delay returns how long to wait after the given 0-based failed attempt.
func (p Policy) Delay(attempt int) time.Duration {
	if p.Base <= 0 || p.Interval <= 0 {
		return 0
	}
	d := p.Interval
	for i := 0; i < attempt; i++ {
		d *= time.Duration(p.Base)
	}
	return d
}

// Wait blocks for the attempt's backoff delay.
func (p Policy) Wait(attempt int) {
	d := p.Delay(attempt)
	if d <= 0 {
		return
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(d)
}

// Last reports whether the given 0-based attempt is the final one.
func (p Policy) Last(attempt int) bool {
	return attempt >= p.MaxAttempts-1
}
