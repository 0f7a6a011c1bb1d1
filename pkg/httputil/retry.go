package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// MaxRetryDelay caps a single wait between attempts, including waits asked
// for by a Retry-After header.
const MaxRetryDelay = 30 * time.Second

// RetryableError marks a failure worth another attempt. After, when set, is
// the minimum wait the server asked for.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err in a [RetryableError]. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// RetryableResponse wraps err for a throttled or failing response, taking
// the wait from the response's Retry-After header when it holds seconds.
func RetryableResponse(resp *http.Response, err error) error {
	if err == nil {
		return nil
	}
	re := &RetryableError{Err: err}
	if s, perr := strconv.Atoi(resp.Header.Get("Retry-After")); perr == nil && s > 0 {
		re.After = time.Duration(s) * time.Second
	}
	return re
}

// IsRetryable reports whether err carries a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Retry runs fn up to attempts times. Only errors carrying a
// [RetryableError] are retried; the wait starts at delay and doubles, but is
// never shorter than the error's After nor longer than [MaxRetryDelay].
// It returns the last error, or ctx.Err() if ctx ends while waiting.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var err error
	for i := range attempts {
		if err = fn(); err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := min(max(delay, re.After), MaxRetryDelay)
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}
