package cache

import (
	"context"
	"errors"
	"net"
	"time"
)

// ErrUnavailable reports a remote backend that did not answer.
var ErrUnavailable = errors.New("cache backend unavailable")

// Redis calls are tried this many times; the wait doubles from retryDelay.
const retryAttempts = 3

var retryDelay = 200 * time.Millisecond

// RetryableError marks a transient failure.
type RetryableError struct{ Err error }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff calls fn until it succeeds, returns an error not marked
// [Retryable], or runs out of attempts. Waiting stops when ctx is done.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	wait := retryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt == retryAttempts {
			return err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}

// classify marks network timeouts as retryable. Everything else, including
// redis.Nil, passes through unchanged.
func classify(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return Retryable(err)
	}
	return err
}
