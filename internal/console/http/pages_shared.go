package http

import (
	"net/http"
	"strconv"
	"time"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/foriam/console/internal/console/view"
)

type navItem struct {
	Key   string
	Label string
	Href  string
}

var navItems = []navItem{
	{Key: "dashboard", Label: "Dashboard", Href: "/dashboard"},
	{Key: "users", Label: "Users", Href: "/users"},
	{Key: "roles", Label: "Roles", Href: "/roles"},
	{Key: "groups", Label: "Groups", Href: "/groups"},
	{Key: "audit", Label: "Audit Logs", Href: "/audit"},
}

const stylesheet = `
body{font-family:system-ui,sans-serif;margin:0;background:#f9fafb;color:#111827}
.shell{display:flex;min-height:100vh}
.sidebar{width:14rem;background:#fff;border-right:1px solid #e5e7eb;padding:1rem}
.sidebar a{display:block;padding:.5rem .75rem;border-radius:.375rem;color:#374151;text-decoration:none}
.sidebar a.active{background:#eff6ff;color:#1d4ed8}
.content{flex:1;padding:2rem}
.topbar{display:flex;justify-content:space-between;align-items:center;margin-bottom:1.5rem}
.card{background:#fff;border:1px solid #e5e7eb;border-radius:.5rem;padding:1.25rem;margin-bottom:1rem}
.stats{display:grid;grid-template-columns:repeat(4,1fr);gap:1rem}
.table{width:100%;border-collapse:collapse}
.table th,.table td{text-align:left;padding:.5rem;border-bottom:1px solid #f3f4f6}
.empty{text-align:center;color:#6b7280;padding:2rem}
.badge{padding:.125rem .5rem;border-radius:9999px;font-size:.75rem}
.badge-success{background:#dcfce7;color:#166534}
.badge-error{background:#fee2e2;color:#991b1b}
.badge-warning{background:#fef9c3;color:#854d0e}
.notice{background:#eff6ff;border:1px solid #bfdbfe;padding:.75rem;border-radius:.375rem;margin-bottom:1rem}
.error{background:#fef2f2;border:1px solid #fecaca;padding:.75rem;border-radius:.375rem;margin-bottom:1rem}
.inline{display:inline}
.login-wrap{max-width:24rem;margin:6rem auto}
`

func documentHead(title string) Node {
	return Head(
		Meta(Charset("utf-8")),
		Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
		TitleEl(Text(title+" | IAM Console")),
		Link(Rel("icon"), Href("data:,")),
		StyleEl(Raw(stylesheet)),
	)
}

// appPage renders the authenticated layout around body.
func appPage(r *http.Request, title, active string, fl flash, body ...Node) Node {
	nav := make([]Node, 0, len(navItems))
	for _, item := range navItems {
		className := ""
		if item.Key == active {
			className = "active"
		}
		nav = append(nav, A(Href(item.Href), Class(className), Text(item.Label)))
	}

	sess := sessionFromContext(r.Context())
	account := "signed in"
	if sess.Email != "" {
		account = sess.Email
	}

	return Doctype(HTML(
		Lang("en"),
		documentHead(title),
		Body(
			Div(Class("shell"),
				Aside(Class("sidebar"),
					H2(Text("IAM Console")),
					Nav(Group(nav)),
				),
				Main(Class("content"),
					Div(Class("topbar"),
						H1(Text(title)),
						Div(
							Span(Class("account"), Text(account)),
							Form(Class("inline"), Method("post"), Action("/logout"),
								csrfField(r),
								Button(Type("submit"), Text("Sign out")),
							),
						),
					),
					flashNodes(fl),
					Group(body),
				),
			),
		),
	))
}

func errorPage(title, message string) Node {
	return Doctype(HTML(
		Lang("en"),
		documentHead(title),
		Body(
			Main(Class("login-wrap"),
				H1(Text(title)),
				P(Text(message)),
				P(A(Href("/dashboard"), Text("Back to dashboard"))),
			),
		),
	))
}

func flashNodes(fl flash) Node {
	return Group{
		If(fl.Notice != "", Div(Class("notice"), Role("status"), Text(fl.Notice))),
		If(fl.Error != "", Div(Class("error"), Role("alert"), Text(fl.Error))),
	}
}

func badge(label string, b view.Badge) Node {
	return Span(Class("badge badge-"+string(b)), Text(label))
}

func emptyRow(cols int, message string) Node {
	return Tr(Td(ColSpan(strconv.Itoa(cols)), Class("empty"), Text(message)))
}

func searchForm(action, term, placeholder string, extra ...Node) Node {
	return Form(Method("get"), Action(action),
		Input(Type("search"), Name("q"), Value(term), Placeholder(placeholder)),
		Group(extra),
		Button(Type("submit"), Text("Search")),
	)
}

func formatDate(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02")
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}
