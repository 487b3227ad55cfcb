package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/foriam/console/internal/console/view"
	"github.com/foriam/console/pkg/iamsdk"
)

func (h *Handler) GroupsList(w http.ResponseWriter, r *http.Request) {
	fl := readFlash(r)
	term := r.URL.Query().Get("q")

	groups, err := view.LoadList(r.Context(), h.log(r), "groups", h.Client.Groups.List)
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		fl.Error = "Groups could not be loaded."
	}

	renderHTML(w, http.StatusOK, groupsPage(r, view.FilterGroups(groups, term), term, fl))
}

func (h *Handler) GroupsCreate(w http.ResponseWriter, r *http.Request) {
	form := namedForm{Name: formValue(r, "name"), Description: formValue(r, "description")}
	if err := h.validate.Struct(form); err != nil {
		redirectWithError(w, r, "/groups", validationMessage(err))
		return
	}

	group, err := h.Client.Groups.Create(r.Context(), iamsdk.CreateGroupRequest{Name: form.Name, Description: form.Description})
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		h.log(r).Warn("failed to create group", "err", err)
		redirectWithError(w, r, "/groups", apiMessage(err))
		return
	}

	redirectWithNotice(w, r, "/groups", "Group "+group.Name+" created.")
}

func (h *Handler) GroupsDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.Client.Groups.Delete(r.Context(), id)
	if followNavigation(w, r) {
		return
	}
	if err != nil {
		h.log(r).Warn("failed to delete group", "group_id", id, "err", err)
		redirectWithError(w, r, "/groups", apiMessage(err))
		return
	}

	redirectWithNotice(w, r, "/groups", "Group deleted.")
}
