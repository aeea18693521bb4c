package mcp

import (
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search runs federated file search.
	Search driving.SearchService

	// Assistant answers free-form messages. Optional.
	Assistant driving.AssistantService

	// Auth opens a session for every tool call.
	Auth driving.AuthService

	// AccountID selects the cached account tools run as.
	AccountID string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Auth == nil {
		return ErrMissingAuthService
	}
	return nil
}
