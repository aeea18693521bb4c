package openai

import (
	"context"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
)

// mockLLM records chat calls and returns a canned reply.
type mockLLM struct {
	reply    string
	err      error
	calls    int
	messages []driven.ChatMessage
	opts     driven.ChatOptions
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.calls++
	m.messages = messages
	m.opts = opts
	return m.reply, m.err
}

func (m *mockLLM) ModelName() string          { return "mock" }
func (m *mockLLM) Ping(context.Context) error { return nil }
func (m *mockLLM) Close() error               { return nil }

// stubPrompts serves fixed prompt texts.
type stubPrompts map[string]string

func (s stubPrompts) Load(name string) (string, error) { return s[name], nil }
func (s stubPrompts) Reload()                          {}
