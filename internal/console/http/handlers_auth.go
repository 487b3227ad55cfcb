package http

import (
	"net/http"
	"time"

	"github.com/foriam/console/pkg/iamsdk"
)

// LoginPage renders the sign-in form, or forwards to the dashboard when a
// session token is already stored.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	present, err := iamsdk.HasToken(r.Context(), h.Tokens)
	if err != nil {
		h.log(r).Error("failed to read session token", "err", err)
	}
	if present {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	renderHTML(w, http.StatusOK, loginPage(r, "", readFlash(r).Error))
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	form := loginForm{
		Email:    formValue(r, "email"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validate.Struct(form); err != nil {
		renderHTML(w, http.StatusUnprocessableEntity, loginPage(r, form.Email, validationMessage(err)))
		return
	}

	_, err := h.Client.Auth.Login(r.Context(), iamsdk.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		h.log(r).Warn("login failed", "email", form.Email, "err", err)

		msg := "Login failed. Please try again."
		status := http.StatusBadGateway
		if iamsdk.IsUnauthorized(err) {
			msg = "Invalid email or password."
			status = http.StatusUnauthorized
		} else if code := iamsdk.StatusCode(err); code != 0 {
			msg = apiMessage(err)
			status = code
		}
		renderHTML(w, status, loginPage(r, form.Email, msg))
		return
	}

	h.log(r).Info("administrator signed in", "email", form.Email)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout ends the session. The local token is gone even if the API call fails.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Client.Auth.Logout(r.Context()); err != nil {
		h.log(r).Warn("logout call failed", "err", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// loginLimited renders the sign-in form with a throttling notice.
func (h *Handler) loginLimited(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	renderHTML(w, http.StatusTooManyRequests,
		loginPage(r, formValue(r, "email"), "Too many sign-in attempts. Try again in "+retryAfter.String()+"."))
}
