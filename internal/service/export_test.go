package service

import "time"

// SetClock replaces the limiter's time source.
func SetClock(tb *TokenBucket, now func() time.Time) {
	tb.now = now
}
