package enrichment

import (
	"context"
	"strings"
	"time"
)

// RetryDo runs fn, retrying with exponential backoff (delay = base *
// 2^attempt) while isRetryable(err) is true, up to maxAttempts total calls.
// The final error (retryable or not) is returned if every attempt fails.
func RetryDo(ctx context.Context, maxAttempts int, baseDelay time.Duration, isRetryable func(error) bool, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !isRetryable(err) || attempt == maxAttempts-1 {
			return err
		}
		delay := baseDelay * time.Duration(1<<uint(attempt))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// IsRateLimited recognizes the HTTP 429 / "rate limit" / "quota" error
// signatures both enrichers retry on, per spec §4.6.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota")
}

// DefaultMaxAttempts and DefaultBaseDelay are the retry policy defaults
// shared by both enrichers.
const (
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = 1 * time.Second
)
