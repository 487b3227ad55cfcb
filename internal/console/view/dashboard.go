package view

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/foriam/console/pkg/iamsdk"
)

// Stats are the dashboard counters.
type Stats struct {
	Users       int `json:"users" yaml:"users"`
	Roles       int `json:"roles" yaml:"roles"`
	Groups      int `json:"groups" yaml:"groups"`
	AuditEvents int `json:"audit_events" yaml:"audit_events"`
}

// LoadDashboard issues the four dashboard calls concurrently and waits for all
// of them. Any failure fails the whole load. The audit count is the server-side
// total, fetched with a page size of one.
func LoadDashboard(ctx context.Context, c *iamsdk.Client) (Stats, error) {
	var stats Stats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		users, err := c.Users.List(gctx)
		if err != nil {
			return fmt.Errorf("users: %w", err)
		}
		stats.Users = len(users)
		return nil
	})
	g.Go(func() error {
		roles, err := c.Roles.List(gctx)
		if err != nil {
			return fmt.Errorf("roles: %w", err)
		}
		stats.Roles = len(roles)
		return nil
	})
	g.Go(func() error {
		groups, err := c.Groups.List(gctx)
		if err != nil {
			return fmt.Errorf("groups: %w", err)
		}
		stats.Groups = len(groups)
		return nil
	})
	g.Go(func() error {
		page, err := c.Audit.List(gctx, &iamsdk.AuditQuery{Limit: 1})
		if err != nil {
			return fmt.Errorf("audit: %w", err)
		}
		stats.AuditEvents = page.Total
		return nil
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
