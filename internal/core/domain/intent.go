package domain

// IntentKind is the classification of a user message.
type IntentKind string

// Known intents.
const (
	// IntentFileSearch means the user wants a document.
	IntentFileSearch IntentKind = "file_search"

	// IntentGeneralResponse means the user wants a conversational answer.
	IntentGeneralResponse IntentKind = "general_response"
)

// IsValid returns true if the intent is recognised.
func (k IntentKind) IsValid() bool {
	return k == IntentFileSearch || k == IntentGeneralResponse
}

// Intent is the result of classifying a user message.
type Intent struct {
	// Kind is the detected intent.
	Kind IntentKind `json:"intent"`

	// Data is the cleaned search string for IntentFileSearch.
	Data string `json:"data"`
}

// GeneralIntent returns the fallback intent used when classification fails.
func GeneralIntent() Intent {
	return Intent{Kind: IntentGeneralResponse}
}
