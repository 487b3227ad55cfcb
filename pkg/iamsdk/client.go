package iamsdk

import (
	"log/slog"
	"net/http"
	"strings"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultLoginRoute is where the Navigator is sent after a 401.
	DefaultLoginRoute = "/login"
)

// Config configures a Client.
type Config struct {
	// BaseURL of the IAM API. Empty means DefaultBaseURL.
	BaseURL string

	// Tokens holds the session token. Required.
	Tokens TokenStore

	// Navigator receives the redirect to the login route after a 401. Optional.
	Navigator Navigator

	// LoginRoute overrides DefaultLoginRoute.
	LoginRoute string

	// Transport is the underlying round tripper wrapped by AuthTransport.
	// Defaults to http.DefaultTransport.
	Transport http.RoundTripper

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a client for the IAM administration API.
// All requests share one AuthTransport, composed once at construction.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	tokens TokenStore
	logger *slog.Logger

	Auth   *AuthService
	Users  *UsersService
	Roles  *RolesService
	Groups *GroupsService
	Audit  *AuditService
}

// New creates a Client. The returned HTTP client has no timeout; callers bound
// requests through their context.
func New(cfg Config) *Client {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}

	loginRoute := cfg.LoginRoute
	if loginRoute == "" {
		loginRoute = DefaultLoginRoute
	}

	c := &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Transport: &AuthTransport{
				Base:       cfg.Transport,
				Tokens:     tokens,
				Navigator:  cfg.Navigator,
				LoginRoute: loginRoute,
				Logger:     logger,
			},
		},
		tokens: tokens,
		logger: logger,
	}

	c.Auth = &AuthService{client: c}
	c.Users = &UsersService{client: c}
	c.Roles = &RolesService{client: c}
	c.Groups = &GroupsService{client: c}
	c.Audit = &AuditService{client: c}

	return c
}

// Tokens returns the store the client reads its session token from.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}
