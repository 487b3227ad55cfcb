package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
)

func (h *Handler) RolesList(w http.ResponseWriter, r *http.Request) {
	fl := readFlash(r)
	term := r.URL.Query().Get("q")

	roles, err := view.LoadList(r.Context(), h.log(r), "roles", h.Client.Roles.List)
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		fl.Error = "Roles could not be loaded."
	}

	renderHTML(w, http.StatusOK, rolesPage(r, view.FilterRoles(roles, term), term, fl))
}

func (h *Handler) RolesCreate(w http.ResponseWriter, r *http.Request) {
	form := namedForm{Name: formValue(r, "name"), Description: formValue(r, "description")}
	if err := h.validate.Struct(form); err != nil {
		redirectWithError(w, r, "/roles", validationMessage(err))
		return
	}

	role, err := h.Client.Roles.Create(r.Context(), iamsdk.CreateRoleRequest{Name: form.Name, Description: form.Description})
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		h.log(r).Warn("failed to create role", "err", err)
		redirectWithError(w, r, "/roles", apiMessage(err))
		return
	}

	redirectWithNotice(w, r, "/roles", "Role "+role.Name+" created.")
}

func (h *Handler) RolesDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Client.Roles.Delete(r.Context(), id)
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		h.log(r).Warn("failed to delete role", "role_id", id, "err", err)
		redirectWithError(w, r, "/roles", apiMessage(err))
		return
	}

	redirectWithNotice(w, r, "/roles", "Role deleted.")
}
