package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/ports/driven"
	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/logger"
)

const (
	// HeaderRetryAfter is the throttling header (seconds or HTTP date).
	HeaderRetryAfter = "Retry-After"

	// HeaderClientRequestID correlates a call's attempts in Graph diagnostics.
	HeaderClientRequestID = "client-request-id"

	// maxBodyBytes bounds how much of a response body is read.
	maxBodyBytes = 64 << 20
)

// Call is a single logical request. It may be sent several times.
type Call struct {
	Method string
	URL    string

	// Body is sent as JSON when non-nil.
	Body []byte

	// Header holds extra request headers.
	Header http.Header

	// Session supplies the bearer token. Nil sends the request unauthenticated.
	Session *domain.Session
}

// Response is the final response of a call, fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	URL        string
}

// OK returns true for a 200 response.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode == http.StatusOK
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %s: %w", r.URL, err)
	}
	return nil
}

// Err returns an UpstreamError describing the response.
func (r *Response) Err() error {
	body := string(r.Body)
	if len(body) > 512 {
		body = body[:512]
	}
	return &domain.UpstreamError{StatusCode: r.StatusCode, URL: r.URL, Body: body}
}

// Caller sends calls. Implemented by Invoker; replaced in tests.
type Caller interface {
	Invoke(ctx context.Context, call *Call) (*Response, error)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Invoker sends calls with token renewal, throttling and retry handling.
// A single Invoker is shared by all concurrent searches.
type Invoker struct {
	httpClient *http.Client
	refresher  driven.TokenRefresher
	limiter    *rate.Limiter
	settings   domain.InvokerSettings
	sleep      SleepFunc
}

var _ Caller = (*Invoker)(nil)

// NewInvoker creates an invoker. refresher may be nil, in which case 401
// responses are returned as-is.
func NewInvoker(httpClient *http.Client, refresher driven.TokenRefresher, settings domain.InvokerSettings) *Invoker {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	var limiter *rate.Limiter
	if settings.RequestsPerSecond > 0 {
		burst := settings.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(settings.RequestsPerSecond), burst)
	}

	return &Invoker{
		httpClient: httpClient,
		refresher:  refresher,
		limiter:    limiter,
		settings:   settings,
		sleep:      sleepContext,
	}
}

// SetSleep replaces the throttling sleep. Used by tests.
func (i *Invoker) SetSleep(fn SleepFunc) {
	i.sleep = fn
}

// Invoke sends the call until it gets a final response.
//
// A 401 on a session with an account renews the token and retries; if the
// renewal yields nothing the 401 is returned as-is. After
// domain.MaxRefreshFailures consecutive failed renewals the session is
// expired and every call on it fails with domain.ErrAuthExpired. A 429 waits for
// Retry-After without spending the retry budget, up to MaxThrottleWait in
// total. Transport failures and 401 retries share MaxRetries; once spent the
// last response (possibly nil) is returned with domain.ErrTransportExhausted.
func (i *Invoker) Invoke(ctx context.Context, call *Call) (*Response, error) {
	requestID := uuid.NewString()

	var (
		last      *Response
		attempts  int
		throttled time.Duration
	)

	for {
		if err := ctx.Err(); err != nil {
			return last, err
		}
		if call.Session != nil && call.Session.Expired() {
			return last, fmt.Errorf("%w: %s %s", domain.ErrAuthExpired, call.Method, call.URL)
		}
		if i.limiter != nil {
			if err := i.limiter.Wait(ctx); err != nil {
				return last, err
			}
		}

		resp, err := i.send(ctx, call, requestID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return last, ctxErr
			}
			attempts++
			logger.Warn("Request error on %s (attempt %d): %v", call.URL, attempts, err)
			if attempts > i.settings.MaxRetries {
				logger.Error("Max retries exceeded for %s", call.URL)
				return last, fmt.Errorf("%w: %s %s: %w", domain.ErrTransportExhausted, call.Method, call.URL, err)
			}
			continue
		}
		last = resp

		switch {
		case resp.StatusCode == http.StatusUnauthorized && i.canRefresh(call):
			if attempts >= i.settings.MaxRetries {
				logger.Error("Max retries exceeded for %s", call.URL)
				return resp, fmt.Errorf("%w: %s %s: %w", domain.ErrTransportExhausted, call.Method, call.URL, domain.ErrAuthExpired)
			}

			logger.Warn("Received 401 from %s, refreshing token", call.URL)
			token, rerr := i.refresher.Refresh(ctx, call.Session.AccountID)
			if rerr != nil || token == "" {
				if rerr != nil {
					logger.Warn("Token refresh failed: %v", rerr)
				}
				if n := call.Session.RefreshFailed(); n >= domain.MaxRefreshFailures {
					logger.Error("Token refresh failed %d times in a row, giving up", n)
					return resp, fmt.Errorf("%w: %s %s", domain.ErrAuthExpired, call.Method, call.URL)
				}
				return resp, nil
			}
			call.Session.Renew(token)
			attempts++

		case resp.StatusCode == http.StatusTooManyRequests:
			wait := retryAfter(resp.Header, i.settings.DefaultRetryAfter)
			if i.settings.MaxThrottleWait > 0 && throttled+wait > i.settings.MaxThrottleWait {
				logger.Error("Throttled on %s for longer than %s", call.URL, i.settings.MaxThrottleWait)
				return resp, fmt.Errorf("%w: %s %s", domain.ErrRateLimited, call.Method, call.URL)
			}
			throttled += wait

			logger.Warn("Rate limited on %s, retrying after %s", call.URL, wait)
			if err := i.sleep(ctx, wait); err != nil {
				return resp, err
			}

		default:
			logger.Info("%s %s returned status %d [%s]", call.Method, call.URL, resp.StatusCode, requestID)
			return resp, nil
		}
	}
}

func (i *Invoker) canRefresh(call *Call) bool {
	return i.refresher != nil && call.Session != nil && call.Session.AccountID != ""
}

// send performs one HTTP attempt bounded by the per-call timeout.
func (i *Invoker) send(ctx context.Context, call *Call, requestID string) (*Response, error) {
	if i.settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.settings.Timeout)
		defer cancel()
	}

	method := call.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if call.Body != nil {
		body = bytes.NewReader(call.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, call.URL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, values := range call.Header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if call.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if call.Session != nil {
		if token := call.Session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	req.Header.Set(HeaderClientRequestID, requestID)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		URL:        call.URL,
	}, nil
}
