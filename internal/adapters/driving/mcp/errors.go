// Package mcp provides an MCP (Model Context Protocol) server adapter for Echo.
// It lets AI assistants search the signed-in user's OneDrive and SharePoint files.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingAuthService is returned when the auth service is not provided.
	ErrMissingAuthService = errors.New("mcp: auth service is required")
)
