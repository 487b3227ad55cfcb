package http

import (
	"net/http"
	"strconv"

	. "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/foriam/console/internal/console/view"
)

func dashboardPage(r *http.Request, stats view.Stats, fl flash) Node {
	cards := []struct {
		name  string
		value int
	}{
		{"Total Users", stats.Users},
		{"Roles", stats.Roles},
		{"Groups", stats.Groups},
		{"Audit Events", stats.AuditEvents},
	}

	nodes := make([]Node, 0, len(cards))
	for _, c := range cards {
		nodes = append(nodes, Div(Class("card stat"),
			Dl(
				Dt(Text(c.name)),
				Dd(Text(strconv.Itoa(c.value))),
			),
		))
	}

	return appPage(r, "Dashboard", "dashboard", fl,
		P(Text("Overview of your identity and access management system")),
		Div(Class("stats"), Group(nodes)),
	)
}
