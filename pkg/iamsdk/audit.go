package iamsdk

import (
	"context"
	"net/http"
)

// AuditService is the call group for /audit.
type AuditService struct {
	client *Client
}

// List returns one page of audit logs plus the total count. GET /audit
// A nil query sends no parameters.
func (s *AuditService) List(ctx context.Context, query *AuditQuery) (*AuditPage, error) {
	var page AuditPage
	if err := s.client.do(ctx, http.MethodGet, "/audit", query.Values(), nil, &page); err != nil {
		return nil, err
	}

	if page.Logs == nil {
		page.Logs = []AuditLog{}
	}
	return &page, nil
}
