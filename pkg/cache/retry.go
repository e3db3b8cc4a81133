package cache

import (
	"context"
	"time"
)

// Backoff retries operations that fail with a [Retryable] error, doubling
// the delay after each attempt up to Max.
type Backoff struct {
	Attempts int           // total tries, at least 1
	Base     time.Duration // delay before the second try
	Max      time.Duration // cap on a single delay; zero means no cap
}

// DefaultBackoff is used by [RetryWithBackoff] and by [RedisCache] unless
// [WithRedisBackoff] replaces it.
var DefaultBackoff = Backoff{Attempts: 3, Base: 200 * time.Millisecond, Max: 2 * time.Second}

// RetryWithBackoff runs fn under [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}

// Do calls fn until it succeeds, returns an error not marked retryable, the
// attempts run out, or ctx is done. It returns the last error from fn, or
// ctx.Err() when cancelled while waiting.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Base

	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
		if b.Max > 0 && delay > b.Max {
			delay = b.Max
		}
	}
	return err
}
