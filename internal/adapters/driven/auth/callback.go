package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// callbackPath is the path of the loopback redirect URI.
const callbackPath = "/callback"

// callbackServer receives the authorisation code on a loopback redirect.
type callbackServer struct {
	mu            sync.Mutex
	port          int
	expectedState string
	codeChan      chan string
	errChan       chan error
	server        *http.Server
}

// newCallbackServer creates a callback server. Port 0 picks a free port.
func newCallbackServer(port int, expectedState string) *callbackServer {
	return &callbackServer{
		port:          port,
		expectedState: expectedState,
		codeChan:      make(chan string, 1),
		errChan:       make(chan error, 1),
	}
}

// Start listens on 127.0.0.1 and serves the redirect in the background.
func (s *callbackServer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, s.handleCallback)

	s.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := fmt.Sprintf("127.0.0.1:%d", s.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		s.port = tcpAddr.Port
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.fail(err)
		}
	}()
	return nil
}

func (s *callbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		desc := query.Get("error_description")
		s.fail(fmt.Errorf("sign-in refused: %s: %s", errParam, desc))
		fmt.Fprint(w, resultPage("Sign-in failed", desc))
		return
	}

	if query.Get("state") != s.expectedState {
		s.fail(errors.New("sign-in refused: state mismatch"))
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, resultPage("Sign-in failed", "The response did not match this sign-in attempt."))
		return
	}

	code := query.Get("code")
	if code == "" {
		s.fail(errors.New("sign-in refused: no authorisation code"))
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, resultPage("Sign-in failed", "No authorisation code was received."))
		return
	}

	select {
	case s.codeChan <- code:
	default:
	}
	fmt.Fprint(w, resultPage("Signed in", "You can close this window and return to echo."))
}

func (s *callbackServer) fail(err error) {
	select {
	case s.errChan <- err:
	default:
	}
}

// Wait blocks until the code arrives, the callback fails, ctx ends or timeout passes.
func (s *callbackServer) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	select {
	case code := <-s.codeChan:
		return code, nil
	case err := <-s.errChan:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("wait for browser sign-in: %w", ctx.Err())
	}
}

// Stop shuts the server down.
func (s *callbackServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// RedirectURI returns the redirect URI registered with the identity provider.
func (s *callbackServer) RedirectURI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d%s", s.port, callbackPath)
}

func resultPage(title, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <title>echo - %[1]s</title>
    <style>
        body { font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; display: flex;
               justify-content: center; align-items: center; height: 100vh; margin: 0; background: #FAFAFA; }
        .box { text-align: center; background: white; padding: 48px 64px; border-radius: 16px;
               border: 1px solid #C7C8CC; }
        h1 { color: #1E3A8A; margin: 0 0 8px 0; font-size: 24px; }
        p { color: #6B7280; margin: 0; }
    </style>
</head>
<body>
    <div class="box">
        <h1>%[1]s</h1>
        <p>%[2]s</p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(message))
}

// generateState creates a random state parameter for CSRF protection.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// OpenBrowser opens the default browser at url.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
