package http

import (
	"context"
	"net/http"
	"time"

	"github.com/foriam/console/pkg/iamsdk"
)

// sessionInfo is what the layout shows about the signed-in administrator.
// It comes from unverified token claims and is display-only.
type sessionInfo struct {
	Email    string
	TenantID string
	Expires  time.Time
}

type sessionKey struct{}

func sessionFromContext(ctx context.Context) sessionInfo {
	s, _ := ctx.Value(sessionKey{}).(sessionInfo)
	return s
}

// RequireSession redirects to /login when no session token is stored.
// Token validity is left to the API: a rejected token is handled by the
// client's 401 path on the first call.
func (h *Handler) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := h.Tokens.Token(r.Context())
		if err != nil {
			h.log(r).Error("failed to read session token", "err", err)
			renderHTML(w, http.StatusInternalServerError, errorPage("Storage Error", "The session store could not be read."))
			return
		}
		if token == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		var info sessionInfo
		if claims, err := iamsdk.ParseClaims(token); err == nil {
			info = sessionInfo{Email: claims.Email, TenantID: claims.TenantID, Expires: claims.Expiry()}
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
