package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
)

func (h *Handler) UsersList(w http.ResponseWriter, r *http.Request) {
	fl := readFlash(r)
	term := r.URL.Query().Get("q")

	users, err := view.LoadList(r.Context(), h.log(r), "users", h.Client.Users.List)
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		fl.Error = "Users could not be loaded."
	}

	renderHTML(w, http.StatusOK, usersPage(r, view.FilterUsers(users, term), term, fl))
}

func (h *Handler) UsersCreate(w http.ResponseWriter, r *http.Request) {
	form := createUserForm{
		Email:    formValue(r, "email"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validate.Struct(form); err != nil {
		redirectWithError(w, r, "/users", validationMessage(err))
		return
	}

	user, err := h.Client.Users.Create(r.Context(), iamsdk.CreateUserRequest{Email: form.Email, Password: form.Password})
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		h.log(r).Warn("failed to create user", "err", err)
		redirectWithError(w, r, "/users", apiMessage(err))
		return
	}

	h.log(r).Info("user created", "user_id", user.ID)
	redirectWithNotice(w, r, "/users", "User "+user.Email+" created.")
}

func (h *Handler) UsersToggle(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form := toggleUserForm{IsActive: formValue(r, "is_active")}
	if err := h.validate.Struct(form); err != nil {
		redirectWithError(w, r, "/users", validationMessage(err))
		return
	}
	active, _ := strconv.ParseBool(form.IsActive)

	_, err := h.Client.Users.Update(r.Context(), id, iamsdk.UpdateUserRequest{IsActive: &active})
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		h.log(r).Warn("failed to update user", "user_id", id, "err", err)
		redirectWithError(w, r, "/users", apiMessage(err))
		return
	}

	notice := "User deactivated."
	if active {
		notice = "User activated."
	}
	redirectWithNotice(w, r, "/users", notice)
}

func (h *Handler) UsersDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Client.Users.Delete(r.Context(), id)
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		h.log(r).Warn("failed to delete user", "user_id", id, "err", err)
		redirectWithError(w, r, "/users", apiMessage(err))
		return
	}

	redirectWithNotice(w, r, "/users", "User deleted.")
}
