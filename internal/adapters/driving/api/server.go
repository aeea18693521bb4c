// Package api serves the assistant and federated search over HTTP using Echo.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driving"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

// ErrMissingPorts is returned when a required service is not provided.
var ErrMissingPorts = errors.New("api: search, assistant and auth services are required")

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Ports aggregates the driving ports the HTTP API uses.
type Ports struct {
	Search    driving.SearchService
	Assistant driving.AssistantService
	Auth      driving.AuthService

	// Notify mails results. Optional; without it email requests are rejected.
	Notify driving.NotifyService

	// AccountID is used when a request names no account.
	AccountID string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil || p.Assistant == nil || p.Auth == nil {
		return ErrMissingPorts
	}
	return nil
}

// Server is the HTTP API.
type Server struct {
	ports *Ports
	echo  *echo.Echo
}

// NewServer creates the API and registers its routes.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(e)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("%s %s %d %s [%s]", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))

	s := &Server{ports: ports, echo: e}
	s.RegisterRoutes(e)
	return s, nil
}

// RegisterRoutes registers the API routes with the Echo router.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", s.Health)

	g := e.Group("/api")
	g.GET("/search", s.Search)
	g.POST("/chat", s.Chat)
	g.GET("/account", s.Account)
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves on addr until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

// session opens a session for the account named by the request.
func (s *Server) session(c echo.Context) (*domain.Session, error) {
	accountID := c.QueryParam("account")
	if accountID == "" {
		accountID = s.ports.AccountID
	}
	return s.ports.Auth.OpenSession(c.Request().Context(), accountID)
}

// errorHandler maps domain errors to status codes and renders them as JSON.
func errorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := statusOf(err)
		message := err.Error()
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok {
				message = m
			}
		}
		if status >= http.StatusInternalServerError {
			logger.Error("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}

		if err := c.JSON(status, ErrorResponse{Error: message}); err != nil {
			e.Logger.Error(err)
		}
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthRequired), errors.Is(err, domain.ErrAuthExpired):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrTransportExhausted):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
