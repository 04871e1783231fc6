package batch

import (
	"context"
	"time"

	"github.com/fwojciec/web2md"
)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// RetryFunc is called before each retry with the attempt about to start
// and the error of the previous one.
type RetryFunc func(url string, attempt int, err error)

// FetchWithRetry fetches url, retrying after each delay in turn. Missing
// pages and invalid requests are not retried.
func FetchWithRetry(ctx context.Context, fetcher web2md.Fetcher, url string, delays []time.Duration, onRetry RetryFunc) (string, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		html, err := fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= len(delays) || !retryable(err) {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if onRetry != nil {
			onRetry(url, attempt+2, err)
		}

		timer := time.NewTimer(delays[attempt])
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return "", lastErr
}

func retryable(err error) bool {
	switch web2md.ErrorCode(err) {
	case web2md.ENOTFOUND, web2md.EINVALID:
		return false
	}
	return true
}
