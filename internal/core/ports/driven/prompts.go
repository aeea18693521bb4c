package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files or embed them in the binary.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	Reload()
}

// Well-known prompt names.
const (
	// PromptIntent classifies a message as file_search or general_response.
	// The template has no placeholders; the message is sent as the user turn.
	PromptIntent = "intent"

	// PromptAnswer is the system prompt for general conversational replies.
	PromptAnswer = "answer"

	// PromptGreeting is the system prompt for greetings and small talk.
	PromptGreeting = "greeting"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service uses its built-in default prompts.
	SetPromptStore(store PromptStore)
}

// DefaultPrompts are the built-in prompt texts.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var DefaultPrompts = map[string]string{
	PromptIntent: `You are the intent classifier of a document assistant. Classify the user message as either a file search or a general response.

Reply strictly in JSON, like:
{"intent": "file_search", "data": "maternity"}
or
{"intent": "general_response", "data": ""}

Rules:
- Use "file_search" if the user wants to get, share, show, download, send or find a document, policy, file, report or manual.
- If the message mentions a file-related term such as file, document or report, it is a file search even when the topic sounds like an HR question.
- Put the clean keywords of the file in "data". Drop filler like file, document, report and info.
- Do not invent keywords. If unclear, use "general_response".
- Use lowercase unless it is a proper name.
- Never return anything except the JSON object.`,

	PromptAnswer: `You are Echo, a helpful assistant that can answer general knowledge and everyday questions.
Answer clearly and concisely. If you are unsure, say so.`,

	PromptGreeting: `You are Echo, a polite assistant inside a document search chatbot.
Respond to greetings and small talk in a friendly, short way, and mention you can find and send documents.`,
}

// DefaultPrompt returns the built-in text for name, or "" when unknown.
func DefaultPrompt(name string) string {
	return DefaultPrompts[name]
}
