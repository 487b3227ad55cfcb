package iamsdk

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/foriam/console/pkg/idx"
)

// AuthTransport is the auth interceptor. It injects the bearer token into every
// outgoing request and reacts to 401 responses by clearing the token and
// navigating to the login route. The response is always passed back unchanged.
type AuthTransport struct {
	// Base defaults to http.DefaultTransport.
	Base http.RoundTripper

	Tokens     TokenStore
	Navigator  Navigator
	LoginRoute string
	Logger     *slog.Logger
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	token, err := t.Tokens.Token(ctx)
	if err != nil {
		closeRequestBody(req)
		return nil, fmt.Errorf("failed to read session token: %w", err)
	}

	// A RoundTripper must not modify the caller's request.
	out := req.Clone(ctx)
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	} else {
		out.Header.Del("Authorization")
	}
	if out.Header.Get("X-Request-ID") == "" {
		out.Header.Set("X-Request-ID", idx.New().String())
	}

	resp, err := t.base().RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.handleUnauthorized(out)
	}

	return resp, nil
}

// handleUnauthorized ends the local session and redirects to the login route.
func (t *AuthTransport) handleUnauthorized(req *http.Request) {
	ctx := req.Context()
	log := t.logger()

	if err := t.Tokens.ClearToken(ctx); err != nil {
		log.Error("failed to clear session token after 401", "err", err)
	}

	route := t.LoginRoute
	if route == "" {
		route = DefaultLoginRoute
	}

	log.Info("session rejected by api",
		"method", req.Method,
		"path", req.URL.Path,
		"redirect", route,
	)

	if t.Navigator != nil {
		t.Navigator.Navigate(ctx, route)
	}
}

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *AuthTransport) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

func closeRequestBody(req *http.Request) {
	if req.Body != nil {
		_ = req.Body.Close()
	}
}
