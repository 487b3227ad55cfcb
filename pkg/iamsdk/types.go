package iamsdk

import (
	"net/url"
	"strconv"
	"time"
)

// ============================================================================
// Auth Types
// ============================================================================

// Credentials is the request body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned from POST /auth/login.
type LoginResponse struct {
	// AccessToken is the session token presented on subsequent requests
	AccessToken string `json:"access_token"`

	// TokenType is "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the token lifetime in seconds
	ExpiresIn int `json:"expires_in"`
}

// MessageResponse is the acknowledgement returned by update and logout endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Users
// ============================================================================

// User is a user account snapshot. GET /auth/profile returns the same shape.
type User struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id,omitempty"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest is the body of PUT /users/{id}. Nil/empty fields are left unchanged.
type UpdateUserRequest struct {
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// ============================================================================
// Roles
// ============================================================================

type Role struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type UpdateRoleRequest struct {
	Name        string  `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ============================================================================
// Groups
// ============================================================================

type Group struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id,omitempty"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type UpdateGroupRequest struct {
	Name        string  `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ============================================================================
// Audit
// ============================================================================

// AuditLog is a single audit event. Status is free-form.
type AuditLog struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id,omitempty"`
	UserID     *string   `json:"user_id,omitempty"`
	Action     string    `json:"action"`
	Resource   *string   `json:"resource,omitempty"`
	ResourceID *string   `json:"resource_id,omitempty"`
	IPAddress  *string   `json:"ip_address,omitempty"`
	UserAgent  *string   `json:"user_agent,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// AuditPage is returned from GET /audit.
type AuditPage struct {
	Logs  []AuditLog `json:"logs"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// AuditQuery holds the optional query parameters of GET /audit.
// Zero values are omitted and the backend applies its defaults.
type AuditQuery struct {
	Page   int
	Limit  int
	Action string
	UserID string
}

// Values encodes the query as URL parameters.
func (q *AuditQuery) Values() url.Values {
	if q == nil {
		return nil
	}

	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Action != "" {
		v.Set("action", q.Action)
	}
	if q.UserID != "" {
		v.Set("user_id", q.UserID)
	}
	return v
}

// Deref returns the value of an optional string field, or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
