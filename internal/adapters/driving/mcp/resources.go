package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Echo resources.
	uriScheme = "echo://"
)

// accountInfo is the public view of the signed-in account. Tokens are never exposed.
type accountInfo struct {
	AccountID string     `json:"account_id"`
	SignedIn  bool       `json:"signed_in"`
	Username  string     `json:"username,omitempty"`
	Expiry    *time.Time `json:"expiry,omitempty"`
	Renewable bool       `json:"renewable"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "account",
		Name:        "account",
		Description: "The account searches run as",
		MIMEType:    "application/json",
	}, s.handleAccountResource)
}

// handleAccountResource returns the sign-in state of the configured account.
func (s *Server) handleAccountResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	info := accountInfo{AccountID: s.ports.AccountID}

	account, err := s.ports.Auth.Status(ctx, s.ports.AccountID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("reading account: %w", err)
	default:
		info.SignedIn = true
		info.Username = account.Username
		info.Renewable = account.HasRefreshToken()
		if !account.Expiry.IsZero() {
			expiry := account.Expiry
			info.Expiry = &expiry
		}
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling account: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
