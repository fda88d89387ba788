// ABOUTME: Backoff utilities for retrying store opens
// ABOUTME: Exponential delay with jitter, capped at 10 seconds
package util

import (
	"math/rand/v2"
	"time"
)

// CalculateBackoff returns exponential backoff with jitter for the given
// attempt (1-based). Delay doubles per attempt with -25% to +25% jitter.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > 10*time.Second {
		backoff = 10 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
