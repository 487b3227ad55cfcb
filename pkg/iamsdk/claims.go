package iamsdk

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the fields of the session token the console displays.
// The token is opaque to the API contract; claims are informational only and
// never used to decide whether the session is valid.
type SessionClaims struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Expiry returns the expiry time, or the zero time if the token has none.
func (c *SessionClaims) Expiry() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

// Expired reports whether the expiry claim is in the past relative to now.
func (c *SessionClaims) Expired(now time.Time) bool {
	exp := c.Expiry()
	return !exp.IsZero() && now.After(exp)
}

// ParseClaims decodes the claims of a JWT session token without verifying its
// signature.
func ParseClaims(token string) (*SessionClaims, error) {
	var claims SessionClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode session token: %w", err)
	}
	return &claims, nil
}
