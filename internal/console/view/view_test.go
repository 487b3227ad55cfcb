package view_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
	"github.com/foriam/console/pkg/iamsdk/iamsdktest"
	"github.com/foriam/console/pkg/slogx"
)

func ptr(s string) *string { return &s }

func TestLoadList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	items, err := view.LoadList(ctx, slogx.Discard(), "users", func(context.Context) ([]string, error) {
		return nil, errors.New("connection refused")
	})
	require.Error(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)

	items, err = view.LoadList(ctx, slogx.Discard(), "users", func(context.Context) ([]string, error) {
		return nil, nil
	})
	require.NoError(t, err)
	require.NotNil(t, items)

	calls := 0
	items, err = view.LoadList(ctx, slogx.Discard(), "users", func(context.Context) ([]string, error) {
		calls++
		return []string{"a"}, nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, items)
	require.Equal(t, 1, calls)
}

func TestFilters(t *testing.T) {
	t.Parallel()

	users := []iamsdk.User{{Email: "Admin@Example.com"}, {Email: "bob@example.com"}}
	require.Len(t, view.FilterUsers(users, "admin"), 1)
	require.Len(t, view.FilterUsers(users, "EXAMPLE"), 2)
	require.Len(t, view.FilterUsers(users, "  "), 2)
	require.Empty(t, view.FilterUsers(users, "carol"))

	roles := []iamsdk.Role{
		{Name: "admin", Description: "Full access"},
		{Name: "viewer", Description: "Read-only access"},
	}
	require.Len(t, view.FilterRoles(roles, "read-only"), 1)
	require.Len(t, view.FilterRoles(roles, "access"), 2)

	groups := []iamsdk.Group{
		{Name: "Engineering", Description: ptr("Platform engineers")},
		{Name: "Sales"},
	}
	require.Len(t, view.FilterGroups(groups, "platform"), 1)
	require.Len(t, view.FilterGroups(groups, "sales"), 1)

	logs := []iamsdk.AuditLog{
		{Action: "auth.login", Status: "success"},
		{Action: "user.create", Resource: ptr("users"), Status: "error"},
	}
	require.Len(t, view.FilterAudit(logs, "users"), 1)
	require.Len(t, view.FilterAudit(logs, "ERROR"), 1)
	require.Len(t, view.FilterAudit(logs, "auth"), 1)
}

func TestEmptyMessage(t *testing.T) {
	t.Parallel()

	require.Equal(t, "No users found matching your search.", view.EmptyMessage(view.Users, "x"))
	require.Equal(t, "No users found. Create your first user to get started.", view.EmptyMessage(view.Users, ""))
	require.Equal(t, "No roles found. Create your first role to get started.", view.EmptyMessage(view.Roles, ""))
	require.Equal(t, "No groups found matching your search.", view.EmptyMessage(view.Groups, "eng"))
	require.Equal(t, "No audit logs available.", view.EmptyMessage(view.Audit, ""))
	require.Equal(t, "No audit logs found matching your search.", view.EmptyMessage(view.Audit, "login"))
}

func TestClassifyStatus(t *testing.T) {
	t.Parallel()

	require.Equal(t, view.BadgeSuccess, view.ClassifyStatus("success"))
	require.Equal(t, view.BadgeError, view.ClassifyStatus("error"))
	require.Equal(t, view.BadgeError, view.ClassifyStatus("Failed"))
	require.Equal(t, view.BadgeWarning, view.ClassifyStatus("pending"))
	require.Equal(t, view.BadgeWarning, view.ClassifyStatus(""))

	label, badge := view.UserBadge(false)
	require.Equal(t, "Inactive", label)
	require.Equal(t, view.BadgeError, badge)
}

func TestPager(t *testing.T) {
	t.Parallel()

	p := view.NewPager(1, 50, 0)
	require.Equal(t, 1, p.TotalPages)
	require.False(t, p.HasPrev())
	require.False(t, p.HasNext())

	p = view.NewPager(2, 10, 25)
	require.Equal(t, 3, p.TotalPages)
	require.True(t, p.HasPrev())
	require.True(t, p.HasNext())
}

func TestLoadDashboard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := iamsdktest.NewServer(t)
	client := iamsdk.New(iamsdk.Config{BaseURL: srv.URL, Logger: slogx.Discard()})
	_, err := client.Auth.Login(ctx, iamsdk.Credentials{Email: iamsdktest.AdminEmail, Password: iamsdktest.AdminPassword})
	require.NoError(t, err)
	srv.ResetRequests()

	stats, err := view.LoadDashboard(ctx, client)
	require.NoError(t, err)
	require.Equal(t, view.Stats{Users: 1, Roles: 2, Groups: 1, AuditEvents: 2}, stats)

	require.Len(t, srv.Requests(), 4)
	require.Equal(t, 1, srv.Count(http.MethodGet, "/audit"))
	for _, r := range srv.Requests() {
		if r.Path == "/audit" {
			require.Equal(t, "limit=1", r.Query)
		}
	}

	srv.Override(http.MethodGet, "/groups", http.StatusInternalServerError, `{"error":"db down"}`)
	_, err = view.LoadDashboard(ctx, client)
	require.Error(t, err)
	require.Equal(t, http.StatusInternalServerError, iamsdk.StatusCode(err))
}
