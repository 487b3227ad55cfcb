package iamsdk

import (
	"context"
	"fmt"
	"net/http"
)

// AuthService groups the session endpoints under /auth.
type AuthService struct {
	client *Client
}

// Login exchanges credentials for a session token and persists it.
// Login goes through the same interceptor as every other call, so a 401 for
// bad credentials also clears any stored token and navigates to the login route.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var loginResp LoginResponse
	if err := s.client.do(ctx, http.MethodPost, "/auth/login", nil, creds, &loginResp); err != nil {
		return nil, err
	}

	if loginResp.AccessToken == "" {
		return nil, fmt.Errorf("%w: login response has no access_token", ErrMalformedResponse)
	}

	if err := s.client.tokens.SetToken(ctx, loginResp.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to persist session token: %w", err)
	}

	return &loginResp, nil
}

// Logout ends the session on the backend and clears the stored token.
// With no token stored it is a no-op and returns nil, so calling it twice is safe.
// The local token is cleared even when the backend call fails; that failure is
// still returned.
func (s *AuthService) Logout(ctx context.Context) error {
	present, err := HasToken(ctx, s.client.tokens)
	if err != nil {
		return fmt.Errorf("failed to read session token: %w", err)
	}
	if !present {
		return nil
	}

	callErr := s.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)

	if err := s.client.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}

	return callErr
}

// Profile returns the authenticated user.
func (s *AuthService) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
