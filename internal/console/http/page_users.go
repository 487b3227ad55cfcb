package http

import (
	"net/http"
	"net/url"
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
)

func usersPage(r *http.Request, users []iamsdk.User, term string, fl flash) Node {
	rows := make([]Node, 0, len(users))
	for _, u := range users {
		label, b := view.UserBadge(u.IsActive)
		toggleLabel := "Deactivate"
		if !u.IsActive {
			toggleLabel = "Activate"
		}
		rows = append(rows, Tr(
			Td(Strong(Text(u.Email))),
			Td(badge(label, b)),
			Td(Text(formatDate(u.CreatedAt))),
			Td(
				Form(Class("inline"), Method("post"), Action("/users/"+url.PathEscape(u.ID)+"/toggle"),
					csrfField(r),
					Input(Type("hidden"), Name("is_active"), Value(strconv.FormatBool(!u.IsActive))),
					Button(Type("submit"), Text(toggleLabel)),
				),
				Form(Class("inline"), Method("post"), Action("/users/"+url.PathEscape(u.ID)+"/delete"),
					csrfField(r),
					Button(Type("submit"), Text("Delete")),
				),
			),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyRow(4, view.EmptyMessage(view.Users, term)))
	}

	return appPage(r, "Users", "users", fl,
		P(Text("Manage user accounts and permissions")),
		Div(Class("card"),
			H2(Text("Add User")),
			Form(Method("post"), Action("/users"),
				csrfField(r),
				Input(Type("email"), Name("email"), Placeholder("Email"), Required()),
				Input(Type("password"), Name("password"), Placeholder("Password"), MinLength("6"), Required()),
				Button(Type("submit"), Text("Create User")),
			),
		),
		Div(Class("card"),
			searchForm("/users", term, "Search users..."),
			Table(Class("table"),
				THead(Tr(Th(Text("Email")), Th(Text("Status")), Th(Text("Created")), Th(Text("Actions")))),
				TBody(Group(rows)),
			),
		),
	)
}
