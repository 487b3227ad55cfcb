/*
Package iamsdk provides a client SDK for the IAM administration REST API.

# Overview

A Client talks JSON over HTTP to a single base URL. Every request goes through
AuthTransport, which does two things:

  - before sending, it reads the session token from the TokenStore and, when one is
    present, sets "Authorization: Bearer <token>"
  - after receiving a 401 response, it clears the stored token and asks the Navigator
    to move the active view to the login route

The 401 response is still returned to the caller as an *APIError, so call sites may
show their own message.

	tokens := iamsdk.NewMemoryTokenStore()
	client := iamsdk.New(iamsdk.Config{
		BaseURL: os.Getenv("IAM_API_URL"),
		Tokens:  tokens,
	})

	// Authenticate (stores the token)
	_, err := client.Auth.Login(ctx, iamsdk.Credentials{Email: "admin@example.com", Password: "secret"})

	// Authenticated calls
	users, err := client.Users.List(ctx)
	page, err := client.Audit.List(ctx, &iamsdk.AuditQuery{Limit: 20})

# Resource call groups

Users, Roles and Groups expose List, Create, Update and Delete. Each verb issues exactly
one HTTP request against /<resource> or /<resource>/{id}. Audit exposes List with
optional paging and filter parameters. Auth exposes Login, Logout and Profile.

# Error Handling

Non-2xx responses are returned as *APIError carrying the status code and the raw body:

	users, err := client.Users.List(ctx)
	var apiErr *iamsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
		// ...
	}

Payloads that cannot be decoded wrap ErrMalformedResponse. The SDK never retries and
sets no client timeout; cancel through the context.

# Thread Safety

A Client is safe for concurrent use as long as its TokenStore is.
*/
package iamsdk
