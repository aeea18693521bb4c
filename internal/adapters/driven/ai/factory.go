// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	openaiembed "github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driven/embedding/openai"
	openaillm "github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/adapters/driven/llm/openai"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// InitResult contains the result of AI service initialisation.
type InitResult struct {
	EmbeddingService driven.EmbeddingService
	LLMService       driven.LLMService
	Classifier       driven.IntentClassifier
	Answerer         driven.Answerer
	Warnings         []string // Non-fatal issues that caused fallback.
}

// Close releases all resources held by InitResult.
func (r *InitResult) Close() {
	if r.EmbeddingService != nil {
		r.EmbeddingService.Close()
	}
	if r.LLMService != nil {
		r.LLMService.Close()
	}
}

// Init creates the AI services the settings configure. Failures degrade
// instead of failing: without embeddings results keep lexical order, without
// an LLM intent detection uses keywords only and general answers are canned.
// Connectivity is not checked; call Validate* from the settings command.
func Init(settings *domain.AppSettings, prompts driven.PromptStore) *InitResult {
	result := &InitResult{}

	embedder, err := CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%v: %v", domain.ErrEmbeddingUnavailable, err))
	} else if embedder != nil {
		result.EmbeddingService = embedder
	}

	llm, err := CreateLLMService(&settings.LLM)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%v: %v", domain.ErrLLMUnavailable, err))
	} else if llm != nil {
		result.LLMService = llm
	}

	classifier := openaillm.NewIntentClassifier(result.LLMService)
	classifier.SetPromptStore(prompts)
	result.Classifier = classifier

	if result.LLMService != nil {
		answerer := openaillm.NewAnswerer(result.LLMService)
		answerer.SetPromptStore(prompts)
		result.Answerer = answerer
	}

	return result
}

// ValidateEmbeddingConfig validates an embedding configuration by creating a service and pinging it.
func ValidateEmbeddingConfig(settings *domain.EmbeddingSettings) error {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}
	return nil
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return nil
}

// CreateEmbeddingService creates an OpenAI-compatible embedding service.
// Returns nil if no API key is configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}
	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// CreateLLMService creates an OpenAI-compatible chat service.
// Returns nil if no API key is configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}
