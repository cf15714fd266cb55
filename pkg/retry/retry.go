package retry

import (
	"context"
	"fmt"
	"time"
)

const defaultDelay = 100 * time.Millisecond

type Backoff func(attempt int) time.Duration

type RetryConfig struct {
	MaxAttempts int
	Backoff     Backoff
}

func (c *RetryConfig) normalize() {
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 1
	}
	if c.Backoff == nil {
		c.Backoff = LinearBackoff(defaultDelay)
	}
}

func LinearBackoff(delay time.Duration) Backoff {
	return func(attempt int) time.Duration {
		return delay
	}
}

func ExponentialBackoff(delay time.Duration) Backoff {
	return func(attempt int) time.Duration {
		return time.Duration(1<<attempt) * delay
	}
}

// Do invokes fn until it succeeds, attempts run out, or ctx is done.
func Do(ctx context.Context, c RetryConfig, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.normalize()

	var err error
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if attempt == c.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-time.After(c.Backoff(attempt)):
		}
	}

	return err
}
