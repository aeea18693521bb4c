package openai

import (
	"context"
	"fmt"
	"regexp"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// Ensure Answerer implements the interfaces.
var (
	_ driven.Answerer         = (*Answerer)(nil)
	_ driven.PromptStoreAware = (*Answerer)(nil)
)

// smallTalk matches greetings that get the short assistant persona.
var smallTalk = regexp.MustCompile(`(?i)\b(?:hi|hello|hey|thanks|thank you|who are you|what can you do)\b`)

// Answerer replies to general messages with the chat model.
type Answerer struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewAnswerer creates an answerer backed by llm.
func NewAnswerer(llm driven.LLMService) *Answerer {
	return &Answerer{llm: llm}
}

// SetPromptStore sets the store the system prompts are loaded from.
func (a *Answerer) SetPromptStore(store driven.PromptStore) {
	a.prompts = store
}

// Answer returns a conversational reply. Greetings use a short, friendly
// persona; everything else gets a broad general-knowledge answer.
func (a *Answerer) Answer(ctx context.Context, message string) (string, error) {
	if a.llm == nil {
		return "", fmt.Errorf("answer: %w", domain.ErrLLMUnavailable)
	}

	prompt, temperature := driven.PromptAnswer, 0.7
	if smallTalk.MatchString(message) {
		prompt, temperature = driven.PromptGreeting, 0.5
	}
	logger.Debug("Answering with %s prompt", prompt)

	reply, err := a.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: loadPrompt(a.prompts, prompt)},
		{Role: "user", Content: message},
	}, driven.ChatOptions{Temperature: temperature})
	if err != nil {
		return "", fmt.Errorf("answer: %w", err)
	}
	return reply, nil
}

// loadPrompt reads name from store, falling back to the built-in text.
func loadPrompt(store driven.PromptStore, name string) string {
	if store != nil {
		if prompt, err := store.Load(name); err == nil && prompt != "" {
			return prompt
		}
	}
	return driven.DefaultPrompt(name)
}
