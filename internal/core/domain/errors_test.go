package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrAuthRequired", ErrAuthRequired},
		{"ErrAuthExpired", ErrAuthExpired},
		{"ErrTokenRefreshFailed", ErrTokenRefreshFailed},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrTransportExhausted", ErrTransportExhausted},
		{"ErrUpstream", ErrUpstream},
		{"ErrExtractionFailed", ErrExtractionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrRateLimited, ErrTransportExhausted))
	assert.False(t, errors.Is(ErrAuthExpired, ErrAuthRequired))
	assert.False(t, errors.Is(ErrUpstream, ErrExtractionFailed))
}

func TestUpstreamError_Is(t *testing.T) {
	err := &UpstreamError{StatusCode: 503, URL: "https://example.test/sites"}

	assert.True(t, errors.Is(err, ErrUpstream))
	assert.False(t, errors.Is(err, ErrRateLimited))
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "https://example.test/sites")

	wrapped := fmt.Errorf("search drive: %w", err)
	assert.True(t, errors.Is(wrapped, ErrUpstream))

	var upstream *UpstreamError
	assert.True(t, errors.As(wrapped, &upstream))
	assert.Equal(t, 503, upstream.StatusCode)
}

func TestUpstreamError_WithBody(t *testing.T) {
	err := &UpstreamError{StatusCode: 400, URL: "u", Body: "bad request"}
	assert.Equal(t, "upstream error: status 400 from u: bad request", err.Error())
}
