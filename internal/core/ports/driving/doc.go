// Package driving defines the ports the CLI, HTTP API, MCP server and TUI
// call into: search, the assistant, sign-in, settings and notifications.
//
// Implementations of these interfaces live in internal/core/services.
package driving
