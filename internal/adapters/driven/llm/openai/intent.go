package openai

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// Ensure IntentClassifier implements the interfaces.
var (
	_ driven.IntentClassifier = (*IntentClassifier)(nil)
	_ driven.PromptStoreAware = (*IntentClassifier)(nil)
)

// fileKeywords mark a message as a probable file request.
var fileKeywords = []string{
	"file", "document", "doc", "pdf", "folder", "record",
	"report", "sheet", "policy", "guide", "manual", "plan", "info",
}

var (
	// leadingRequest strips everything up to the first request verb.
	// Verbs must be whole words so "budget" or "target" survive.
	leadingRequest = regexp.MustCompile(`^.*?\b(?:give|get|show|find|download|share)\s+(?:me\s+)?(?:the\s+)?`)

	// trailingNoun strips a trailing "file", "report" and similar.
	trailingNoun = regexp.MustCompile(`\s+(?:file|document|folder|info|report)?$`)
)

// IntentClassifier detects file requests with a keyword shortcut and asks
// the chat model for everything else. Any model failure yields a general intent.
type IntentClassifier struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewIntentClassifier creates a classifier. llm may be nil, in which case
// only the keyword shortcut is used.
func NewIntentClassifier(llm driven.LLMService) *IntentClassifier {
	return &IntentClassifier{llm: llm}
}

// SetPromptStore sets the store the classification prompt is loaded from.
func (c *IntentClassifier) SetPromptStore(store driven.PromptStore) {
	c.prompts = store
}

// Classify returns the intent of message.
// Only a cancelled context is reported as an error.
func (c *IntentClassifier) Classify(ctx context.Context, message string) (domain.Intent, error) {
	if intent, ok := shortcutIntent(message); ok {
		logger.Debug("Intent shortcut: %q -> %q", message, intent.Data)
		return intent, nil
	}
	if c.llm == nil {
		return domain.GeneralIntent(), nil
	}

	raw, err := c.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: loadPrompt(c.prompts, driven.PromptIntent)},
		{Role: "user", Content: message},
	}, driven.ChatOptions{Temperature: 0.2, JSON: true})
	if err != nil {
		if ctx.Err() != nil {
			return domain.Intent{}, ctx.Err()
		}
		logger.Warn("Intent detection failed: %v", err)
		return domain.GeneralIntent(), nil
	}

	intent, ok := parseIntent(raw)
	if !ok {
		logger.Warn("Intent detection returned unusable reply: %q", raw)
		return domain.GeneralIntent(), nil
	}
	if intent.Kind == domain.IntentFileSearch && intent.Data == "" {
		intent.Data = strings.TrimSpace(message)
	}
	return intent, nil
}

// shortcutIntent recognises messages that mention a file or document.
func shortcutIntent(message string) (domain.Intent, bool) {
	lower := strings.ToLower(strings.TrimSpace(message))
	if !strings.Contains(lower, "file") && !strings.Contains(lower, "document") {
		return domain.Intent{}, false
	}
	if !containsAny(lower, fileKeywords) {
		return domain.Intent{}, false
	}

	query := leadingRequest.ReplaceAllString(lower, "")
	query = strings.TrimSpace(trailingNoun.ReplaceAllString(query, ""))
	if query == "" {
		return domain.Intent{}, false
	}
	return domain.Intent{Kind: domain.IntentFileSearch, Data: query}, true
}

// parseIntent decodes the model reply, tolerating markdown code fences.
func parseIntent(raw string) (domain.Intent, bool) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var intent domain.Intent
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &intent); err != nil {
		return domain.Intent{}, false
	}
	if !intent.Kind.IsValid() {
		return domain.Intent{}, false
	}
	intent.Data = strings.TrimSpace(intent.Data)
	return intent, true
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
