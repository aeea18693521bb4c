package graph

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// retryAfter parses the Retry-After header as seconds or an HTTP date.
// Missing, malformed or negative values yield fallback.
func retryAfter(h http.Header, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(h.Get(HeaderRetryAfter))
	if value == "" {
		return fallback
	}

	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return fallback
		}
		return time.Duration(seconds) * time.Second
	}

	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
		return 0
	}

	return fallback
}

// sleepContext waits for d, returning early with ctx.Err() on cancellation.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
