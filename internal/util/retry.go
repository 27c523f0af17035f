package util

import (
	"context"
	"errors"
	"time"
)

// RetryWithBackoff calls fn up to maxTries times, sleeping between attempts
// with an exponential backoff that starts at baseDelay and doubles each
// retry. Only errors for which retryable returns true are retried; any
// other error propagates immediately. A nil retryable retries everything.
func RetryWithBackoff[T any](
	ctx context.Context,
	maxTries int,
	baseDelay time.Duration,
	retryable func(error) bool,
	fn func(context.Context) (T, error),
) (T, error) {
	if maxTries <= 0 {
		maxTries = 1
	}
	var zero T
	var lastErr error

	delay := baseDelay
	for i := 0; i < maxTries; i++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}
		if retryable != nil && !retryable(err) {
			return zero, err
		}
		lastErr = err

		if i == maxTries-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return zero, lastErr
}
