package view

import (
	"strings"

	"github.com/foriam/console/pkg/iamsdk"
)

// Filter keeps the items for which any of the fields returned by fields
// contains term, ignoring case. An empty term keeps everything.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), term) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func FilterUsers(users []iamsdk.User, term string) []iamsdk.User {
	return Filter(users, term, func(u iamsdk.User) []string {
		return []string{u.Email}
	})
}

func FilterRoles(roles []iamsdk.Role, term string) []iamsdk.Role {
	return Filter(roles, term, func(r iamsdk.Role) []string {
		return []string{r.Name, r.Description}
	})
}

func FilterGroups(groups []iamsdk.Group, term string) []iamsdk.Group {
	return Filter(groups, term, func(g iamsdk.Group) []string {
		return []string{g.Name, iamsdk.Deref(g.Description)}
	})
}

func FilterAudit(logs []iamsdk.AuditLog, term string) []iamsdk.AuditLog {
	return Filter(logs, term, func(l iamsdk.AuditLog) []string {
		return []string{l.Action, iamsdk.Deref(l.Resource), l.Status}
	})
}
