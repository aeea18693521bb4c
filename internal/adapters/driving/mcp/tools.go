package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// defaultLimit caps search_files results when the caller gives no limit.
const defaultLimit = 10

// SearchInput is the input schema for the search_files tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"words from the file name or content, optionally with a year"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of files to return (default 10)"`
}

// SearchOutput is the output schema for the search_files tool.
type SearchOutput struct {
	Files []FileOutput `json:"files"`
	Count int          `json:"count"`
}

// FileOutput represents a single file hit.
type FileOutput struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	URL    string   `json:"url"`
	Origin string   `json:"origin"`
	Score  *float64 `json:"score,omitempty"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Message string `json:"message" jsonschema:"a question or a request for a document"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of files to return for document requests"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Intent string       `json:"intent"`
	Answer string       `json:"answer,omitempty"`
	Query  string       `json:"query,omitempty"`
	Files  []FileOutput `json:"files,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_files",
		Description: "Search the user's OneDrive and every SharePoint site, ranked by relevance",
	}, s.handleSearch)

	if s.ports.Assistant != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Ask the document assistant: finds requested files or answers general questions",
		}, s.handleAsk)
	}
}

// handleSearch handles the search_files tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	if input.Query == "" {
		return nil, SearchOutput{}, errors.New("query is required")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	session, err := s.session(ctx)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	files, err := s.ports.Search.Search(ctx, session, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	if len(files) > limit {
		files = files[:limit]
	}

	output := SearchOutput{
		Files: toOutputs(files),
		Count: len(files),
	}
	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	session, err := s.session(ctx)
	if err != nil && !errors.Is(err, domain.ErrAuthRequired) {
		return nil, AskOutput{}, err
	}

	reply, err := s.ports.Assistant.Handle(ctx, session, input.Message, domain.SearchOptions{TopK: input.Limit})
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Intent: string(reply.Intent.Kind),
		Answer: reply.Answer,
		Query:  reply.Query,
		Files:  toOutputs(reply.Files),
	}, nil
}

func toOutputs(files []domain.File) []FileOutput {
	out := make([]FileOutput, len(files))
	for i := range files {
		out[i] = FileOutput{
			ID:     files[i].ID,
			Name:   files[i].Name,
			URL:    files[i].WebURL,
			Origin: files[i].Origin,
			Score:  files[i].Score,
		}
	}
	return out
}
