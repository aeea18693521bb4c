package graph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

// mockRefresher implements driven.TokenRefresher for testing.
type mockRefresher struct {
	mu     sync.Mutex
	tokens []string
	err    error
	calls  int
}

func (m *mockRefresher) Refresh(_ context.Context, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if len(m.tokens) == 0 {
		return "", nil
	}
	token := m.tokens[0]
	if len(m.tokens) > 1 {
		m.tokens = m.tokens[1:]
	}
	return token, nil
}

// recordingSleep records requested waits without sleeping.
type recordingSleep struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (r *recordingSleep) sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.waits = append(r.waits, d)
	return nil
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func testInvokerSettings() domain.InvokerSettings {
	return domain.InvokerSettings{
		MaxRetries:        2,
		Timeout:           5 * time.Second,
		DefaultRetryAfter: 5 * time.Second,
		MaxThrottleWait:   time.Minute,
	}
}

func newTestInvoker(refresher *mockRefresher, settings domain.InvokerSettings) (*Invoker, *recordingSleep) {
	var inv *Invoker
	if refresher != nil {
		inv = NewInvoker(nil, refresher, settings)
	} else {
		inv = NewInvoker(nil, nil, settings)
	}
	sleeper := &recordingSleep{}
	inv.SetSleep(sleeper.sleep)
	return inv, sleeper
}

func TestInvoker_Success(t *testing.T) {
	var gotAuth, gotRequestID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get(HeaderClientRequestID)
		_, _ = w.Write([]byte(`{"value":[]}`))
	}))
	defer srv.Close()

	inv, _ := newTestInvoker(nil, testInvokerSettings())

	resp, err := inv.Invoke(context.Background(), &Call{URL: srv.URL, Session: domain.NewSession("acct", "t0")})

	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"value":[]}`, string(resp.Body))
	assert.Equal(t, "Bearer t0", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestInvoker_NoSession_NoAuthorization(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	inv, _ := newTestInvoker(nil, testInvokerSettings())

	resp, err := inv.Invoke(context.Background(), &Call{URL: srv.URL})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, gotAuth)
}

func TestInvoker_401_RefreshesAndRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	refresher := &mockRefresher{tokens: []string{"fresh"}}
	inv, _ := newTestInvoker(refresher, testInvokerSettings())
	session := domain.NewSession("acct", "stale")

	resp, err := inv.Invoke(context.Background(), &Call{URL: srv.URL, Session: session})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, "fresh", session.Token())
}

func TestInvoker_401_WithoutAccount_ReturnedAsIs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	refresher := &mockRefresher{tokens: []string{"fresh"}}
	inv, _ := newTestInvoker(refresher, testInvokerSettings())

	resp, err := inv.Invoke(context.Background(), &Call{URL: srv.URL, Session: domain.NewSession("", "t0")})

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, refresher.calls)
}

func TestInvoker_401_RefreshYieldsNothing(t *testing.T) {
	tests := []struct {
		name      string
		refresher *mockRefresher
	}{
		{"empty token", &mockRefresher{}},
		{"refresh error", &mockRefresher{err: errors.New("cache unreadable")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				hits.Add(1)
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer srv.Close()

			inv, _ := newTestInvoker(tt.refresher, testInvokerSettings())
			session := domain.NewSession("acct", "stale")

			resp, err := inv.Invoke(context.Background(), &Call{URL: srv.URL, Session: session})

			require.NoError(t, err)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Equal(t, int32(1), hits.Load())
			assert.Equal(t, 1, tt.refresher.calls)
			assert.Equal(t, "stale", session.Token())
		})
	}
}

func TestInvoker_401_SecondFailedRefreshExpiresSession(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	refresher := &mockRefresher{}
	inv, _ := newTestInvoker(refresher, testInvokerSettings())
	session := domain.NewSession("acct", "expired")

	resp, err := inv.Invoke(context.Background(), &Call{URL: srv.URL, Session: session})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, session.Expired())

	resp, err = inv.Invoke(context.Background(), &Call{URL: srv.URL + "/sites", Session: session})
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	require.NotNil(t, resp)
	assert.True(t, session.Expired())

	resp, err = inv.Invoke(context.Background(), &Call{URL: srv.URL + "/recent", Session: session})
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.Nil(t, resp)

	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, 2, refresher.calls)
}

func TestInvoker_401_Persistent_ExhaustsBudget(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	refresher := &mockRefresher{tokens: []string{"t1", "t2", "t3"}}
	inv, _ := newTestInvoker(refresher, testInvokerSettings())

	resp, err := inv.Invoke(context.Background(), &Call{URL: srv.URL, Session: domain.NewSession("acct", "t0")})

	require.ErrorIs(t, err, domain.ErrTransportExhausted)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, 2, refresher.calls)
}

func TestInvoker_429_HonoursRetryAfter(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set(HeaderRetryAfter, "3")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	inv, sleeper := newTestInvoker(nil, testInvokerSettings())

	resp, err := inv.Invoke(context.Background(), &Call{URL: srv.URL})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []time.Duration{3 * time.Second}, sleeper.waits)
}

func TestInvoker_429_DefaultWait(t *testing.T) {
	for _, header := range []string{"", "soon", "-4"} {
		t.Run("retry-after="+header, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if hits.Add(1) == 1 {
					if header != "" {
						w.Header().Set(HeaderRetryAfter, header)
					}
					w.WriteHeader(http.StatusTooManyRequests)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			inv, sleeper := newTestInvoker(nil, testInvokerSettings())

			_, err := inv.Invoke(context.Background(), &Call{URL: srv.URL})

			require.NoError(t, err)
			assert.Equal(t, []time.Duration{5 * time.Second}, sleeper.waits)
		})
	}
}

func TestInvoker_429_DoesNotConsumeRetryBudget(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) <= 4 {
			w.Header().Set(HeaderRetryAfter, "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	settings := testInvokerSettings()
	settings.MaxRetries = 0
	inv, sleeper := newTestInvoker(nil, settings)

	resp, err := inv.Invoke(context.Background(), &Call{URL: srv.URL})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, sleeper.waits, 4)
}

func TestInvoker_429_CappedTotalWait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRetryAfter, "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	settings := testInvokerSettings()
	settings.MaxThrottleWait = time.Minute
	inv, sleeper := newTestInvoker(nil, settings)

	resp, err := inv.Invoke(context.Background(), &Call{URL: srv.URL})

	require.ErrorIs(t, err, domain.ErrRateLimited)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, []time.Duration{30 * time.Second, 30 * time.Second}, sleeper.waits)
}

func TestInvoker_429_CancelledDuringWait(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(HeaderRetryAfter, "10")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	inv := NewInvoker(nil, nil, testInvokerSettings())
	ctx, cancel := context.WithCancel(context.Background())
	inv.SetSleep(func(ctx context.Context, _ time.Duration) error {
		cancel()
		<-ctx.Done()
		return ctx.Err()
	})

	_, err := inv.Invoke(ctx, &Call{URL: srv.URL})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestInvoker_TransportErrors_Exhausted(t *testing.T) {
	var attempts atomic.Int32
	client := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		attempts.Add(1)
		return nil, errors.New("connection reset")
	})}

	inv := NewInvoker(client, nil, testInvokerSettings())

	resp, err := inv.Invoke(context.Background(), &Call{URL: "http://graph.invalid/me"})

	require.ErrorIs(t, err, domain.ErrTransportExhausted)
	assert.Nil(t, resp)
	assert.Equal(t, int32(3), attempts.Load())
}

func TestInvoker_TransportError_ThenSuccess(t *testing.T) {
	var attempts atomic.Int32
	client := &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if attempts.Add(1) == 1 {
			return nil, errors.New("connection reset")
		}
		rec := httptest.NewRecorder()
		rec.WriteHeader(http.StatusOK)
		return rec.Result(), nil
	})}

	inv := NewInvoker(client, nil, testInvokerSettings())

	resp, err := inv.Invoke(context.Background(), &Call{URL: "http://graph.invalid/me"})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInvoker_OtherStatus_ReturnedImmediately(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	inv, _ := newTestInvoker(&mockRefresher{tokens: []string{"x"}}, testInvokerSettings())

	resp, err := inv.Invoke(context.Background(), &Call{URL: srv.URL, Session: domain.NewSession("acct", "t0")})

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int32(1), hits.Load())
	assert.ErrorIs(t, resp.Err(), domain.ErrUpstream)
}

func TestInvoker_PostsJSONBody(t *testing.T) {
	var gotType, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
		gotMethod = r.Method
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	inv, _ := newTestInvoker(nil, testInvokerSettings())

	resp, err := inv.Invoke(context.Background(), &Call{Method: http.MethodPost, URL: srv.URL, Body: []byte(`{}`)})

	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, http.MethodPost, gotMethod)
}

func TestRetryAfter(t *testing.T) {
	fallback := 5 * time.Second
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"absent", "", fallback},
		{"seconds", "12", 12 * time.Second},
		{"zero", "0", 0},
		{"negative", "-1", fallback},
		{"garbage", "later", fallback},
		{"past date", "Mon, 02 Jan 2006 15:04:05 GMT", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.Header{}
			if tt.value != "" {
				h.Set(HeaderRetryAfter, tt.value)
			}
			assert.Equal(t, tt.want, retryAfter(h, fallback))
		})
	}
}
