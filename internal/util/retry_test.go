package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryWithBackoffCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RetryWithBackoff(ctx, 3, time.Millisecond, nil, func(ctx context.Context) (int, error) {
		t.Fatal("fn should not run with a canceled context")
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	errTransient := errors.New("unavailable")

	t.Run("retries transient errors with delays", func(t *testing.T) {
		attempts := 0
		base := 5 * time.Millisecond
		start := time.Now()

		got, err := RetryWithBackoff(context.Background(), 3, base,
			func(err error) bool { return errors.Is(err, errTransient) },
			func(ctx context.Context) (string, error) {
				attempts++
				if attempts <= 2 {
					return "", errTransient
				}
				return "ok", nil
			})
		if err != nil {
			t.Fatalf("RetryWithBackoff() error = %v", err)
		}
		if got != "ok" || attempts != 3 {
			t.Errorf("got %q after %d attempts, want \"ok\" after 3", got, attempts)
		}
		// Two delays before the third attempt: base + 2*base.
		if elapsed := time.Since(start); elapsed < 3*base {
			t.Errorf("elapsed %v, want at least %v of backoff", elapsed, 3*base)
		}
	})

	t.Run("non-retryable error propagates immediately", func(t *testing.T) {
		attempts := 0
		_, err := RetryWithBackoff(context.Background(), 3, time.Millisecond,
			func(err error) bool { return errors.Is(err, errTransient) },
			func(ctx context.Context) (string, error) {
				attempts++
				return "", errors.New("fatal")
			})
		if err == nil || attempts != 1 {
			t.Errorf("err = %v after %d attempts, want immediate failure", err, attempts)
		}
	})

	t.Run("exhausted retries return last error", func(t *testing.T) {
		_, err := RetryWithBackoff(context.Background(), 2, time.Millisecond, nil,
			func(ctx context.Context) (string, error) {
				return "", errTransient
			})
		if !errors.Is(err, errTransient) {
			t.Errorf("err = %v, want last transient error", err)
		}
	})
}
