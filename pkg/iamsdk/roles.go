package iamsdk

import (
	"context"
	"net/http"
)

const rolesPath = "/roles"

// RolesService is the call group for /roles.
type RolesService struct {
	client *Client
}

// List returns all roles. GET /roles
func (s *RolesService) List(ctx context.Context) ([]Role, error) {
	return list[Role](ctx, s.client, rolesPath)
}

// Create creates a role. POST /roles
func (s *RolesService) Create(ctx context.Context, req CreateRoleRequest) (*Role, error) {
	var role Role
	if err := s.client.do(ctx, http.MethodPost, rolesPath, nil, req, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// Update modifies a role. PUT /roles/{id}
func (s *RolesService) Update(ctx context.Context, id string, req UpdateRoleRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := s.client.do(ctx, http.MethodPut, resourcePath(rolesPath, id), nil, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Delete removes a role. DELETE /roles/{id}
func (s *RolesService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, resourcePath(rolesPath, id), nil, nil, nil)
}
