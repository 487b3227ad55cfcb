// Package iamsdktest provides an in-process fake of the IAM administration API
// for tests of the SDK and its consumers.
package iamsdktest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/foriam/console/pkg/iamsdk"
	"github.com/foriam/console/pkg/idx"
)

const (
	AdminEmail    = "admin@foriam.local"
	AdminPassword = "admin123"
	TenantID      = "tenant-default"

	signingSecret = "iamsdktest-secret"
)

// Request is a request observed by the fake.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	Body          string
}

type override struct {
	status int
	body   string
}

// Server is a fake IAM API backed by in-memory collections.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	users     []iamsdk.User
	passwords map[string]string // email -> password
	roles     []iamsdk.Role
	groups    []iamsdk.Group
	audit     []iamsdk.AuditLog
	tokens    map[string]string // token -> user id
	requests  []Request
	overrides map[string]override
}

// NewServer starts a seeded fake and stops it when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		passwords: map[string]string{AdminEmail: AdminPassword},
		tokens:    make(map[string]string),
		overrides: make(map[string]override),
	}
	s.seed()
	s.Server = httptest.NewServer(s.routes())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) seed() {
	now := time.Now().UTC()
	desc := "Platform engineers"

	s.users = []iamsdk.User{{
		ID:        idx.New().String(),
		TenantID:  TenantID,
		Email:     AdminEmail,
		IsActive:  true,
		CreatedAt: now,
	}}
	s.roles = []iamsdk.Role{
		{ID: idx.New().String(), TenantID: TenantID, Name: "admin", Description: "Full access", CreatedAt: now},
		{ID: idx.New().String(), TenantID: TenantID, Name: "viewer", Description: "Read-only access", CreatedAt: now},
	}
	s.groups = []iamsdk.Group{
		{ID: idx.New().String(), TenantID: TenantID, Name: "Engineering", Description: &desc, CreatedAt: now},
	}
	s.recordAudit(s.users[0].ID, "system.init", "", "success")
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record, s.applyOverrides)

	r.Post("/auth/login", s.login)
	r.Post("/auth/logout", s.logout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireBearer)

		r.Get("/auth/profile", s.profile)

		r.Get("/users", s.listUsers)
		r.Post("/users", s.createUser)
		r.Put("/users/{id}", s.updateUser)
		r.Delete("/users/{id}", s.deleteUser)

		r.Get("/roles", s.listRoles)
		r.Post("/roles", s.createRole)
		r.Put("/roles/{id}", s.updateRole)
		r.Delete("/roles/{id}", s.deleteRole)

		r.Get("/groups", s.listGroups)
		r.Post("/groups", s.createGroup)
		r.Put("/groups/{id}", s.updateGroup)
		r.Delete("/groups/{id}", s.deleteGroup)

		r.Get("/audit", s.listAudit)
	})

	return r
}

// ============================================================================
// Test controls
// ============================================================================

// Requests returns a copy of every request observed so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many requests matched method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// LastRequest returns the most recent request, or the zero Request.
func (s *Server) LastRequest() Request {
	reqs := s.Requests()
	if len(reqs) == 0 {
		return Request{}
	}
	return reqs[len(reqs)-1]
}

// ResetRequests forgets observed requests.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// Override makes every "METHOD path" request answer with status and a raw body.
func (s *Server) Override(method, path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[method+" "+path] = override{status: status, body: body}
}

// ClearOverrides removes all overrides.
func (s *Server) ClearOverrides() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = make(map[string]override)
}

// RevokeAll invalidates every issued token, as if they had expired.
func (s *Server) RevokeAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]string)
}

// IssueToken mints a valid token for the seeded admin.
func (s *Server) IssueToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueLocked(s.users[0])
}

// Users returns a snapshot of the user collection.
func (s *Server) Users() []iamsdk.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]iamsdk.User, len(s.users))
	copy(out, s.users)
	return out
}

// ============================================================================
// Middleware
// ============================================================================

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(body),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) applyOverrides(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		o, ok := s.overrides[r.Method+" "+r.URL.Path]
		s.mu.Unlock()

		if ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(o.status)
			_, _ = w.Write([]byte(o.body))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authorization header required"})
			return
		}

		s.mu.Lock()
		_, valid := s.tokens[raw]
		s.mu.Unlock()

		if !valid {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ============================================================================
// Auth
// ============================================================================

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds iamsdk.Credentials
	if err := decodeBody(r, &creds); err != nil || creds.Email == "" || creds.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if pw, ok := s.passwords[creds.Email]; !ok || pw != creds.Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}

	var user iamsdk.User
	for _, u := range s.users {
		if u.Email == creds.Email && u.IsActive {
			user = u
		}
	}
	if user.ID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
		return
	}

	token := s.issueLocked(user)
	s.recordAudit(user.ID, "auth.login", "", "success")

	writeJSON(w, http.StatusOK, iamsdk.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   86400,
	})
}

func (s *Server) logout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, iamsdk.MessageResponse{Message: "Logged out successfully"})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	defer s.mu.Unlock()

	userID := s.tokens[raw]
	for _, u := range s.users {
		if u.ID == userID {
			writeJSON(w, http.StatusOK, u)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
}

func (s *Server) issueLocked(user iamsdk.User) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"tenant_id": user.TenantID,
		"email":     user.Email,
		"iat":       now.Unix(),
		"exp":       now.Add(24 * time.Hour).Unix(),
		"jti":       idx.New().String(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signingSecret))
	if err != nil {
		panic(err)
	}
	s.tokens[signed] = user.ID
	return signed
}

// ============================================================================
// Users
// ============================================================================

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.users)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req iamsdk.CreateUserRequest
	if err := decodeBody(r, &req); err != nil || req.Email == "" || len(req.Password) < 6 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "valid email and password (min 6) required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := iamsdk.User{
		ID:        idx.New().String(),
		TenantID:  TenantID,
		Email:     req.Email,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	s.users = append(s.users, user)
	s.passwords[req.Email] = req.Password
	s.recordAudit(user.ID, "user.create", "users", "success")

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var req iamsdk.UpdateUserRequest
	if err := decodeBody(r, &req); err != nil || (req.Email == "" && req.IsActive == nil) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No fields to update"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		if req.Email != "" {
			s.users[i].Email = req.Email
		}
		if req.IsActive != nil {
			s.users[i].IsActive = *req.IsActive
		}
		writeJSON(w, http.StatusOK, iamsdk.MessageResponse{Message: "User updated successfully"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			writeJSON(w, http.StatusOK, iamsdk.MessageResponse{Message: "User deleted successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "User not found"})
}

// ============================================================================
// Roles
// ============================================================================

func (s *Server) listRoles(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.roles)
}

func (s *Server) createRole(w http.ResponseWriter, r *http.Request) {
	var req iamsdk.CreateRoleRequest
	if err := decodeBody(r, &req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	role := iamsdk.Role{
		ID:          idx.New().String(),
		TenantID:    TenantID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	s.roles = append(s.roles, role)
	writeJSON(w, http.StatusCreated, role)
}

func (s *Server) updateRole(w http.ResponseWriter, r *http.Request) {
	var req iamsdk.UpdateRoleRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range s.roles {
		if s.roles[i].ID != id {
			continue
		}
		if req.Name != "" {
			s.roles[i].Name = req.Name
		}
		if req.Description != nil {
			s.roles[i].Description = *req.Description
		}
		writeJSON(w, http.StatusOK, iamsdk.MessageResponse{Message: "Role updated successfully"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Role not found"})
}

func (s *Server) deleteRole(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range s.roles {
		if s.roles[i].ID == id {
			s.roles = append(s.roles[:i], s.roles[i+1:]...)
			writeJSON(w, http.StatusOK, iamsdk.MessageResponse{Message: "Role deleted successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Role not found"})
}

// ============================================================================
// Groups
// ============================================================================

func (s *Server) listGroups(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.groups)
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var req iamsdk.CreateGroupRequest
	if err := decodeBody(r, &req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group := iamsdk.Group{
		ID:        idx.New().String(),
		TenantID:  TenantID,
		Name:      req.Name,
		CreatedAt: time.Now().UTC(),
	}
	if req.Description != "" {
		desc := req.Description
		group.Description = &desc
	}
	s.groups = append(s.groups, group)
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) updateGroup(w http.ResponseWriter, r *http.Request) {
	var req iamsdk.UpdateGroupRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range s.groups {
		if s.groups[i].ID != id {
			continue
		}
		if req.Name != "" {
			s.groups[i].Name = req.Name
		}
		if req.Description != nil {
			desc := *req.Description
			s.groups[i].Description = &desc
		}
		writeJSON(w, http.StatusOK, iamsdk.MessageResponse{Message: "Group updated successfully"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Group not found"})
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	for i := range s.groups {
		if s.groups[i].ID == id {
			s.groups = append(s.groups[:i], s.groups[i+1:]...)
			writeJSON(w, http.StatusOK, iamsdk.MessageResponse{Message: "Group deleted successfully"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Group not found"})
}

// ============================================================================
// Audit
// ============================================================================

func (s *Server) listAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}
	action := q.Get("action")
	userID := q.Get("user_id")

	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []iamsdk.AuditLog{}
	// newest first
	for i := len(s.audit) - 1; i >= 0; i-- {
		entry := s.audit[i]
		if action != "" && entry.Action != action {
			continue
		}
		if userID != "" && iamsdk.Deref(entry.UserID) != userID {
			continue
		}
		matched = append(matched, entry)
	}

	start := min((page-1)*limit, len(matched))
	end := min(start+limit, len(matched))

	writeJSON(w, http.StatusOK, iamsdk.AuditPage{
		Logs:  matched[start:end],
		Total: len(matched),
		Page:  page,
		Limit: limit,
	})
}

func (s *Server) recordAudit(userID, action, resource, status string) {
	entry := iamsdk.AuditLog{
		ID:        idx.New().String(),
		TenantID:  TenantID,
		UserID:    &userID,
		Action:    action,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if resource != "" {
		entry.Resource = &resource
	}
	ip := "127.0.0.1"
	entry.IPAddress = &ip
	s.audit = append(s.audit, entry)
}

// ============================================================================
// Helpers
// ============================================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}
