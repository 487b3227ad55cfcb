package view

import "strings"

// Resource names a list page.
type Resource string

const (
	Users  Resource = "users"
	Roles  Resource = "roles"
	Groups Resource = "groups"
	Audit  Resource = "audit logs"
)

// EmptyMessage is the text shown in place of an empty table. A non-blank term
// means the list was filtered.
func EmptyMessage(r Resource, term string) string {
	searching := strings.TrimSpace(term) != ""

	if r == Audit {
		if searching {
			return "No audit logs found matching your search."
		}
		return "No audit logs available."
	}

	if searching {
		return "No " + string(r) + " found matching your search."
	}
	singular := strings.TrimSuffix(string(r), "s")
	return "No " + string(r) + " found. Create your first " + singular + " to get started."
}
