package iamsdk

import (
	"context"
	"net/http"
)

const usersPath = "/users"

// UsersService is the call group for /users.
type UsersService struct {
	client *Client
}

// List returns all users. GET /users
func (s *UsersService) List(ctx context.Context) ([]User, error) {
	return list[User](ctx, s.client, usersPath)
}

// Create creates a user and returns it. POST /users
func (s *UsersService) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	var user User
	if err := s.client.do(ctx, http.MethodPost, usersPath, nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update modifies a user. PUT /users/{id}
func (s *UsersService) Update(ctx context.Context, id string, req UpdateUserRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := s.client.do(ctx, http.MethodPut, resourcePath(usersPath, id), nil, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Delete removes a user. DELETE /users/{id}
func (s *UsersService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, resourcePath(usersPath, id), nil, nil, nil)
}
