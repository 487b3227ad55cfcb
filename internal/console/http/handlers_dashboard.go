package http

import (
	"net/http"

	"github.com/foriam/console/internal/console/view"
)

// Dashboard shows the four counters. A failed load shows zeros with a notice.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	fl := readFlash(r)

	stats, err := view.LoadDashboard(r.Context(), h.Client)
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		h.log(r).Warn("failed to fetch stats", "err", err)
		fl.Error = "Statistics are unavailable right now."
	}

	renderHTML(w, http.StatusOK, dashboardPage(r, stats, fl))
}

// Root forwards to the dashboard.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
