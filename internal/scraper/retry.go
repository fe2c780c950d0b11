package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrRetriesExhausted wraps the last failure once every attempt has been used
var ErrRetriesExhausted = errors.New("retries exhausted")

// RetryConfig retries an operation a fixed number of times with a constant pause
type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

// Do runs fn until it succeeds, the attempts run out or ctx is cancelled
func (r *RetryConfig) Do(ctx context.Context, operation string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		left := r.MaxAttempts - attempt
		if left == 0 {
			break
		}
		log.Printf("⚠️  %s failed: %s. Retrying... Attempts left: %d", operation, errorLine(lastErr), left)
		if err := sleep(ctx, r.Delay); err != nil {
			return err
		}
	}

	log.Printf("[ERROR] %s failed after %d attempts, giving up", operation, r.MaxAttempts)
	return fmt.Errorf("%s: %w after %d attempts: %w", operation, ErrRetriesExhausted, r.MaxAttempts, lastErr)
}
