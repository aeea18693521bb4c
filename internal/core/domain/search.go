package domain

// SearchOptions configures a federated search.
type SearchOptions struct {
	// TopK truncates the ranked list. Zero or negative means all results.
	TopK int

	// SkipSemantic disables the embedding stage; results keep lexical order.
	SkipSemantic bool
}

// Reply is the answer to one assistant message.
type Reply struct {
	// Intent is the classified intent of the message.
	Intent Intent `json:"intent"`

	// Plan is the decomposed query, set for file searches.
	Plan *QueryPlan `json:"plan,omitempty"`

	// Query is the variant that produced the files.
	Query string `json:"query,omitempty"`

	// Files are the ranked files, best first.
	Files []File `json:"files,omitempty"`

	// Answer is the conversational answer for general messages.
	Answer string `json:"answer,omitempty"`
}
