package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// Health handles GET /healthz.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Search handles GET /api/search?q=...&limit=...
// It runs the federated search pipeline and returns files ranked by similarity.
func (s *Server) Search(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q query parameter is required")
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	session, err := s.session(c)
	if err != nil {
		return err
	}

	files, err := s.ports.Search.Search(c.Request().Context(), session, query)
	if err != nil {
		return err
	}
	if limit > 0 && len(files) > limit {
		files = files[:limit]
	}
	if files == nil {
		files = []domain.File{}
	}

	return c.JSON(http.StatusOK, SearchResponse{Query: query, Files: files, Count: len(files)})
}

// Chat handles POST /api/chat.
// General messages are answered without a signed-in account.
func (s *Server) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	ctx := c.Request().Context()
	session, err := s.session(c)
	if err != nil && !errors.Is(err, domain.ErrAuthRequired) {
		return err
	}

	reply, err := s.ports.Assistant.Handle(ctx, session, req.Message, domain.SearchOptions{
		TopK:         req.TopK,
		SkipSemantic: req.SkipSemantic,
	})
	if err != nil {
		return err
	}

	resp := ChatResponse{Reply: reply}
	if req.Email && len(reply.Files) > 0 {
		if s.ports.Notify == nil {
			return echo.NewHTTPError(http.StatusNotImplemented, "mail is not configured")
		}
		to, err := s.ports.Notify.SendFiles(ctx, session, req.To, reply.Files)
		if err != nil {
			return fmt.Errorf("email results: %w", err)
		}
		resp.EmailedTo = to
	}

	return c.JSON(http.StatusOK, resp)
}

// Account handles GET /api/account.
func (s *Server) Account(c echo.Context) error {
	accountID := c.QueryParam("account")
	if accountID == "" {
		accountID = s.ports.AccountID
	}

	resp := AccountResponse{AccountID: accountID}
	account, err := s.ports.Auth.Status(c.Request().Context(), accountID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		return err
	default:
		resp.SignedIn = true
		resp.Username = account.Username
		if !account.Expiry.IsZero() {
			expiry := account.Expiry
			resp.Expiry = &expiry
		}
	}
	return c.JSON(http.StatusOK, resp)
}
