package http

import (
	"context"
	"net/http"
	"time"

	"github.com/foriam/console/pkg/httpx"
)

// HealthResponse is the body of /livez and /readyz.
type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// Pinger is a dependency whose reachability gates readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LivezHandler reports that the process is serving.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler reports whether the session store is reachable.
func ReadyzHandler(startTime time.Time, version string, storage Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  map[string]string{"storage": "ok"},
		}
		code := http.StatusOK

		if storage != nil {
			if err := storage.Ping(r.Context()); err != nil {
				resp.Checks["storage"] = "error: " + err.Error()
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		httpx.WriteJSON(w, code, resp)
	}
}
