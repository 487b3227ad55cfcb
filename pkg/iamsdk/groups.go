package iamsdk

import (
	"context"
	"net/http"
)

const groupsPath = "/groups"

// GroupsService is the call group for /groups.
type GroupsService struct {
	client *Client
}

// List returns all groups. GET /groups
func (s *GroupsService) List(ctx context.Context) ([]Group, error) {
	return list[Group](ctx, s.client, groupsPath)
}

// Create creates a group. POST /groups
func (s *GroupsService) Create(ctx context.Context, req CreateGroupRequest) (*Group, error) {
	var group Group
	if err := s.client.do(ctx, http.MethodPost, groupsPath, nil, req, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// Update modifies a group. PUT /groups/{id}
func (s *GroupsService) Update(ctx context.Context, id string, req UpdateGroupRequest) (*MessageResponse, error) {
	var msg MessageResponse
	if err := s.client.do(ctx, http.MethodPut, resourcePath(groupsPath, id), nil, req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Delete removes a group. DELETE /groups/{id}
func (s *GroupsService) Delete(ctx context.Context, id string) error {
	return s.client.do(ctx, http.MethodDelete, resourcePath(groupsPath, id), nil, nil, nil)
}
