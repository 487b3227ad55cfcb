package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/foriam/console/pkg/iamsdk"
)

// Location is the route the current request has been sent to by the API
// client. One is attached to every request context.
type Location struct {
	mu    sync.Mutex
	route string
}

func (l *Location) set(route string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.route = route
}

// Route returns the recorded route, or "" if no navigation happened.
func (l *Location) Route() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.route
}

type locationKey struct{}

// LocationFromContext returns the Location of the request, if any.
func LocationFromContext(ctx context.Context) (*Location, bool) {
	loc, ok := ctx.Value(locationKey{}).(*Location)
	return loc, ok
}

// TrackNavigation attaches a fresh Location to each request.
func TrackNavigation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), locationKey{}, &Location{})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Navigator records navigation requests from the API client in the
// request's Location. Calls made outside a tracked request are dropped.
type Navigator struct{}

var _ iamsdk.Navigator = Navigator{}

func (Navigator) Navigate(ctx context.Context, route string) {
	if loc, ok := LocationFromContext(ctx); ok {
		loc.set(route)
	}
}

// followNavigation redirects to the recorded route, if any, and reports
// whether it did. Handlers call it after API calls and before rendering.
func followNavigation(w http.ResponseWriter, r *http.Request) bool {
	loc, ok := LocationFromContext(r.Context())
	if !ok {
		return false
	}
	route := loc.Route()
	if route == "" {
		return false
	}
	http.Redirect(w, r, route, http.StatusSeeOther)
	return true
}
