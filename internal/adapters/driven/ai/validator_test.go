package ai

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
)

func TestConfigValidator_ImplementsInterface(t *testing.T) {
	var _ driven.AIConfigValidator = (*ConfigValidator)(nil)
}

func TestConfigValidator_Unconfigured(t *testing.T) {
	validator := NewConfigValidator()

	assert.NoError(t, validator.ValidateEmbedding(nil))
	assert.NoError(t, validator.ValidateEmbedding(&domain.EmbeddingSettings{Model: "m"}))
	assert.NoError(t, validator.ValidateLLM(nil))
	assert.NoError(t, validator.ValidateLLM(&domain.LLMSettings{Model: "m"}))
}

func TestConfigValidator_PingsProvider(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer good" {
			_, _ = w.Write([]byte(`{"data":[]}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	validator := NewConfigValidator()

	assert.NoError(t, validator.ValidateEmbedding(&domain.EmbeddingSettings{APIKey: "good", BaseURL: server.URL}))
	assert.NoError(t, validator.ValidateLLM(&domain.LLMSettings{APIKey: "good", BaseURL: server.URL}))

	err := validator.ValidateEmbedding(&domain.EmbeddingSettings{APIKey: "bad", BaseURL: server.URL})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)

	err = validator.ValidateLLM(&domain.LLMSettings{APIKey: "bad", BaseURL: server.URL})
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
