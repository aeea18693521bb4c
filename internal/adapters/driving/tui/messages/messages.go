// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// AskRequested is a command to send a message to the assistant.
type AskRequested struct {
	Message string
}

// AskCompleted carries the assistant's reply back to the model.
type AskCompleted struct {
	Reply *domain.Reply
	Err   error
}

// EmailCompleted reports the outcome of mailing a file link.
type EmailCompleted struct {
	To  string
	Err error
}

// ErrorOccurred is sent when an error needs to be displayed.
type ErrorOccurred struct {
	Err error
}
