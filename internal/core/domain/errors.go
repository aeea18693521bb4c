package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// General answers are disabled and intent detection falls back to keywords.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service failed or is not configured.
	// Ranking degrades to the unranked (lexical) order.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// Authentication Errors.

	// ErrAuthRequired indicates no token could be obtained for the account at all.
	// This is the only failure the search pipeline surfaces to the caller.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthExpired indicates the remote API rejected the bearer token (401).
	ErrAuthExpired = errors.New("authentication expired")

	// ErrTokenRefreshFailed indicates token refresh operation failed.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// Transport Errors.

	// ErrRateLimited indicates the API kept throttling (429) past the allowed total wait.
	ErrRateLimited = errors.New("rate limited")

	// ErrTransportExhausted indicates the retry budget for 401/transport failures was spent.
	ErrTransportExhausted = errors.New("transport retries exhausted")

	// ErrUpstream indicates a non-2xx response that is neither 401 nor 429.
	ErrUpstream = errors.New("upstream error")

	// ErrExtractionFailed indicates the text of a file could not be extracted.
	ErrExtractionFailed = errors.New("text extraction failed")
)

// UpstreamError describes a non-retried error response from the remote API.
type UpstreamError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream error: status %d from %s", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("upstream error: status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Is reports whether target is ErrUpstream.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
