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

type auditView struct {
	Logs   []iamsdk.AuditLog
	Pager  view.Pager
	Term   string
	Action string
}

func auditPage(r *http.Request, v auditView, fl flash) Node {
	rows := make([]Node, 0, len(v.Logs))
	for _, l := range v.Logs {
		rows = append(rows, Tr(
			Td(Strong(Text(l.Action))),
			Td(Text(orDash(iamsdk.Deref(l.Resource)))),
			Td(Text(orDash(iamsdk.Deref(l.UserID)))),
			Td(Text(orDash(iamsdk.Deref(l.IPAddress)))),
			Td(badge(l.Status, view.ClassifyStatus(l.Status))),
			Td(Text(formatTime(l.CreatedAt))),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyRow(6, view.EmptyMessage(view.Audit, v.Term)))
	}

	return appPage(r, "Audit Logs", "audit", fl,
		P(Text("Track system activities and security events")),
		Div(Class("card"),
			searchForm("/audit", v.Term, "Search audit logs...",
				Input(Type("text"), Name("action"), Value(v.Action), Placeholder("Action")),
				Input(Type("hidden"), Name("limit"), Value(strconv.Itoa(v.Pager.Limit))),
			),
			Table(Class("table"),
				THead(Tr(
					Th(Text("Action")), Th(Text("Resource")), Th(Text("User")),
					Th(Text("IP Address")), Th(Text("Status")), Th(Text("Timestamp")),
				)),
				TBody(Group(rows)),
			),
			pagerNav(v),
		),
	)
}

func pagerNav(v auditView) Node {
	link := func(page int) string {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("limit", strconv.Itoa(v.Pager.Limit))
		if v.Action != "" {
			q.Set("action", v.Action)
		}
		if v.Term != "" {
			q.Set("q", v.Term)
		}
		return "/audit?" + q.Encode()
	}

	return Nav(Class("pager"),
		If(v.Pager.HasPrev(), A(Href(link(v.Pager.Page-1)), Rel("prev"), Text("Previous"))),
		Span(Textf(" Page %d of %d (%d events) ", v.Pager.Page, v.Pager.TotalPages, v.Pager.Total)),
		If(v.Pager.HasNext(), A(Href(link(v.Pager.Page+1)), Rel("next"), Text("Next"))),
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
