// Package tui provides an interactive terminal user interface for echo.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Assistant answers messages and finds files.
	Assistant driving.AssistantService

	// Auth opens a session per message. Optional; without it only
	// general questions can be answered.
	Auth driving.AuthService

	// Notify mails the selected result. Optional.
	Notify driving.NotifyService

	// AccountID selects the cached account.
	AccountID string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Assistant == nil {
		return ErrMissingAssistantService
	}
	return nil
}
