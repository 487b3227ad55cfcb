package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/foriam/console/internal/console/obs"
	"github.com/foriam/console/pkg/httpx"
	"github.com/foriam/console/pkg/slogx"
)

// Router holds shared dependencies for the console's HTTP surface.
type Router struct {
	Mux *chi.Mux

	handler      *Handler
	metrics      *obs.Metrics
	storage      Pinger
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
}

func NewRouter(h *Handler, metrics *obs.Metrics, storage Pinger, buildVersion string, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          chi.NewRouter(),
		handler:      h,
		metrics:      metrics,
		storage:      storage,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
	}

	// Route patterns are only known inside the mux, so the global chain is
	// registered on it rather than wrapped around it.
	r.Mux.Use(slogx.HTTPMiddleware(r.logger))
	if r.metrics != nil {
		r.Mux.Use(r.metrics.Instrument)
	}
	r.Mux.Use(TrackNavigation, h.EnsureCSRFToken, h.RequireCSRF)

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSystem()
	r.registerAuth()
	r.registerConsole()
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Mux.ServeHTTP(w, req)
}

func (r *Router) registerSystem() {
	r.Mux.Get("/livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Get("/readyz", ReadyzHandler(r.startTime, r.buildVersion, r.storage))
	if r.metrics != nil {
		r.Mux.Method(http.MethodGet, "/metrics", r.metrics.Handler())
	}
}

func (r *Router) registerAuth() {
	h := r.handler

	r.Mux.Get("/login", h.LoginPage)

	// POST /login - strict rate limit by IP + email
	r.Mux.Method(http.MethodPost, "/login",
		httpx.Chain(http.HandlerFunc(h.LoginSubmit),
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "email", h.loginLimited),
		),
	)

	r.Mux.Post("/logout", h.Logout)
}

func (r *Router) registerConsole() {
	h := r.handler
	mutation := httpx.RateLimitByIP(httpx.MutationLimit, nil)

	r.Mux.Group(func(g chi.Router) {
		g.Use(h.RequireSession)

		g.Get("/", h.Root)
		g.Get("/dashboard", h.Dashboard)

		g.Get("/users", h.UsersList)
		g.Get("/roles", h.RolesList)
		g.Get("/groups", h.GroupsList)
		g.Get("/audit", h.AuditList)

		g.Group(func(m chi.Router) {
			m.Use(mutation)

			m.Post("/users", h.UsersCreate)
			m.Post("/users/{id}/toggle", h.UsersToggle)
			m.Post("/users/{id}/delete", h.UsersDelete)

			m.Post("/roles", h.RolesCreate)
			m.Post("/roles/{id}/delete", h.RolesDelete)

			m.Post("/groups", h.GroupsCreate)
			m.Post("/groups/{id}/delete", h.GroupsDelete)
		})
	})
}
