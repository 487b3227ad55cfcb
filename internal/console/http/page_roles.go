package http

import (
	"net/http"
	"net/url"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
)

func rolesPage(r *http.Request, roles []iamsdk.Role, term string, fl flash) Node {
	rows := make([]Node, 0, len(roles))
	for _, role := range roles {
		rows = append(rows, namedRow(r, "/roles/"+url.PathEscape(role.ID), role.Name, role.Description, formatDate(role.CreatedAt)))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyRow(4, view.EmptyMessage(view.Roles, term)))
	}

	return appPage(r, "Roles", "roles", fl,
		P(Text("Manage roles and their permissions")),
		createNamedForm(r, "/roles", "Add Role", "Create Role"),
		Div(Class("card"),
			searchForm("/roles", term, "Search roles..."),
			namedTable(rows),
		),
	)
}

func groupsPage(r *http.Request, groups []iamsdk.Group, term string, fl flash) Node {
	rows := make([]Node, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, namedRow(r, "/groups/"+url.PathEscape(g.ID), g.Name, iamsdk.Deref(g.Description), formatDate(g.CreatedAt)))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyRow(4, view.EmptyMessage(view.Groups, term)))
	}

	return appPage(r, "Groups", "groups", fl,
		P(Text("Organize users into groups")),
		createNamedForm(r, "/groups", "Add Group", "Create Group"),
		Div(Class("card"),
			searchForm("/groups", term, "Search groups..."),
			namedTable(rows),
		),
	)
}

func namedTable(rows []Node) Node {
	return Table(Class("table"),
		THead(Tr(Th(Text("Name")), Th(Text("Description")), Th(Text("Created")), Th(Text("Actions")))),
		TBody(Group(rows)),
	)
}

func namedRow(r *http.Request, base, name, description, created string) Node {
	if description == "" {
		description = "-"
	}
	return Tr(
		Td(Strong(Text(name))),
		Td(Text(description)),
		Td(Text(created)),
		Td(Form(Class("inline"), Method("post"), Action(base+"/delete"),
			csrfField(r),
			Button(Type("submit"), Text("Delete")),
		)),
	)
}

func createNamedForm(r *http.Request, action, heading, submit string) Node {
	return Div(Class("card"),
		H2(Text(heading)),
		Form(Method("post"), Action(action),
			csrfField(r),
			Input(Type("text"), Name("name"), Placeholder("Name"), Required()),
			Input(Type("text"), Name("description"), Placeholder("Description")),
			Button(Type("submit"), Text(submit)),
		),
	)
}
