package obs_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/foriam/console/internal/console/obs"
)

func TestEndpoint(t *testing.T) {
	t.Parallel()

	require.Equal(t, "/users/{id}", obs.Endpoint("/users/01HX"))
	require.Equal(t, "/groups/{id}", obs.Endpoint("/groups/7"))
	require.Equal(t, "/users", obs.Endpoint("/users"))
	require.Equal(t, "/auth/login", obs.Endpoint("/auth/login"))
}

func TestInstrumentTransport(t *testing.T) {
	t.Parallel()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/users/") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(api.Close)

	m := obs.NewMetrics()
	client := &http.Client{Transport: m.InstrumentTransport(nil)}

	for _, p := range []string{"/users", "/users/1", "/users/2"} {
		resp, err := client.Get(api.URL + p)
		require.NoError(t, err)
		resp.Body.Close()
	}

	series, err := testutil.GatherAndCount(m.Registry(), "console_api_requests_total")
	require.NoError(t, err)
	require.Equal(t, 2, series)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	require.Contains(t, string(body), `console_api_requests_total{endpoint="/users/{id}",method="GET",status="401"} 2`)
	require.Contains(t, string(body), `console_api_unauthorized_total 2`)
}

func TestInstrument(t *testing.T) {
	t.Parallel()

	m := obs.NewMetrics()
	r := chi.NewRouter()
	r.Use(m.Instrument)
	r.Get("/users/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/users/abc", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, rec.Body.String(), `console_http_requests_total{method="GET",route="/users/{id}",status="404"} 1`)
}
