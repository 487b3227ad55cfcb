//go:build e2e

package console_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foriam/console/pkg/iamsdk/iamsdktest"
)

func TestHealth(t *testing.T) {
	_, baseURL := setupConsole(t, relaxedLimits)
	b := newBrowser(t, baseURL)

	resp, body := b.get("/livez")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	require.Equal(t, "ok", health.Status)
	require.NotEmpty(t, health.Version)

	resp, _ = b.get("/readyz")
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginAndBrowse(t *testing.T) {
	srv, baseURL := setupConsole(t, relaxedLimits)
	b := newBrowser(t, baseURL)

	resp, _ := b.get("/dashboard")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	b.signIn()

	resp, body := b.get("/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Total Users")
	require.Contains(t, body, iamsdktest.AdminEmail)

	for _, page := range []string{"/users", "/roles", "/groups", "/audit"} {
		resp, _ := b.get(page)
		require.Equal(t, http.StatusOK, resp.StatusCode, page)
	}

	resp, _ = b.post("/users", url.Values{"email": {"e2e@foriam.local"}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Len(t, srv.Users(), 2)

	_, body = b.get("/users?q=e2e")
	require.Contains(t, body, "e2e@foriam.local")
}

func TestExpiredSession(t *testing.T) {
	srv, baseURL := setupConsole(t, relaxedLimits)
	b := newBrowser(t, baseURL)
	b.signIn()

	srv.RevokeAll()

	resp, _ := b.get("/users")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	// the stored token was cleared, so the gate now answers without the API
	srv.ResetRequests()
	resp, _ = b.get("/roles")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Empty(t, srv.Requests())
}

func TestLogout(t *testing.T) {
	srv, baseURL := setupConsole(t, relaxedLimits)
	b := newBrowser(t, baseURL)
	b.signIn()

	resp, _ := b.post("/logout", nil)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
	require.Equal(t, 1, srv.Count(http.MethodPost, "/auth/logout"))

	resp, _ = b.get("/dashboard")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestCSRFRejected(t *testing.T) {
	srv, baseURL := setupConsole(t, relaxedLimits)
	b := newBrowser(t, baseURL)
	b.signIn()

	req, err := http.NewRequestWithContext(t.Context(), http.MethodPost, baseURL+"/roles", nil)
	require.NoError(t, err)
	resp, _ := b.do(req)

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Zero(t, srv.Count(http.MethodPost, "/roles"))
}

// TestRateLimitLogin runs with production limits: 5 attempts per minute.
func TestRateLimitLogin(t *testing.T) {
	_, baseURL := setupConsole(t, nil)
	b := newBrowser(t, baseURL)

	form := func() url.Values {
		return url.Values{"email": {iamsdktest.AdminEmail}, "password": {"wrong-password"}}
	}

	for i := range 5 {
		resp, _ := b.post("/login", form())
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "attempt %d", i+1)
	}

	resp, body := b.post("/login", form())
	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("Retry-After"))
	require.Contains(t, body, "Too many sign-in attempts")
}
