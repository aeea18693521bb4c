package api

import (
	"time"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SearchResponse is returned by GET /api/search.
type SearchResponse struct {
	Query string        `json:"query"`
	Files []domain.File `json:"files"`
	Count int           `json:"count"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message      string `json:"message"`
	TopK         int    `json:"top_k,omitempty"`
	SkipSemantic bool   `json:"skip_semantic,omitempty"`

	// Email mails the found files; To overrides the signed-in user as recipient.
	Email bool   `json:"email,omitempty"`
	To    string `json:"to,omitempty"`
}

// ChatResponse is returned by POST /api/chat.
type ChatResponse struct {
	*domain.Reply

	// EmailedTo is the recipient when the files were mailed.
	EmailedTo string `json:"emailed_to,omitempty"`
}

// AccountResponse is returned by GET /api/account. Tokens are never exposed.
type AccountResponse struct {
	AccountID string     `json:"account_id"`
	SignedIn  bool       `json:"signed_in"`
	Username  string     `json:"username,omitempty"`
	Expiry    *time.Time `json:"expiry,omitempty"`
}
