package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzahidalmoon2000/ECHO-and-HR-Assistant/internal/core/domain"
)

func TestDeviceAuthorizer_Authorize(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/contoso/oauth2/v2.0/devicecode", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		assert.Equal(t, "client-123", r.PostForm.Get("client_id"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"device_code":      "dev-code",
			"user_code":        "ABCD-EFGH",
			"verification_uri": "https://microsoft.com/devicelogin",
			"expires_in":       60,
			"interval":         1,
		})
	})
	mux.HandleFunc("/contoso/oauth2/v2.0/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		assert.Equal(t, "dev-code", r.PostForm.Get("device_code"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "device-access",
			"refresh_token": "device-refresh",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	authorizer := NewDeviceAuthorizer(OAuthConfig(testGraphSettings(server.URL)), server.Client())

	var shownURI, shownCode string
	account, err := authorizer.Authorize(context.Background(), func(uri, code string) {
		shownURI, shownCode = uri, code
	})
	require.NoError(t, err)
	assert.Equal(t, "https://microsoft.com/devicelogin", shownURI)
	assert.Equal(t, "ABCD-EFGH", shownCode)
	assert.Equal(t, "device-access", account.AccessToken)
	assert.Equal(t, "device-refresh", account.RefreshToken)
	assert.True(t, account.HasRefreshToken())
}

func TestDeviceAuthorizer_RequiresClientID(t *testing.T) {
	settings := testGraphSettings("https://login.example.com")
	settings.ClientID = ""
	authorizer := NewDeviceAuthorizer(OAuthConfig(settings), nil)

	_, err := authorizer.Authorize(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
