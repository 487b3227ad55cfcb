package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 100
)

// AuditList shows one page of audit events. Paging and the action filter are
// applied by the API; q filters the returned page.
func (h *Handler) AuditList(w http.ResponseWriter, r *http.Request) {
	fl := readFlash(r)
	q := r.URL.Query()

	query := &iamsdk.AuditQuery{
		Page:   clampInt(q.Get("page"), 1, 1, 1<<20),
		Limit:  clampInt(q.Get("limit"), defaultAuditLimit, 1, maxAuditLimit),
		Action: strings.TrimSpace(q.Get("action")),
	}

	total := 0
	logs, err := view.LoadList(r.Context(), h.log(r), "audit logs", func(ctx context.Context) ([]iamsdk.AuditLog, error) {
		page, err := h.Client.Audit.List(ctx, query)
		if err != nil {
			return nil, err
		}
		total = page.Total
		return page.Logs, nil
	})
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		fl.Error = "Audit logs could not be loaded."
	}

	term := q.Get("q")
	renderHTML(w, http.StatusOK, auditPage(r, auditView{
		Logs:   view.FilterAudit(logs, term),
		Pager:  view.NewPager(query.Page, query.Limit, total),
		Term:   term,
		Action: query.Action,
	}, fl))
}

func clampInt(raw string, def, lo, hi int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return min(max(n, lo), hi)
}
