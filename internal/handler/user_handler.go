package handlers

import (
	"net/http"

	"adminconsole/internal/console"
)

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, console.PageUsers, h.Console.Users.List, "role", "status")
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	user, err := h.Console.Users.Detail(r.Context(), id)
	if err != nil {
		writeActionError(w, err)
		return
	}
	h.writeFrame(w, user, http.StatusOK)
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	var form console.UserForm
	if !decodeJSON(w, r, &form) {
		return
	}

	if err := h.Console.Users.Update(r.Context(), id, form); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeFrame(w, h.Console.Users.List.View(), http.StatusOK)
}

func (h *Handlers) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	if err := h.Console.Users.ToggleStatus(r.Context(), id); err != nil {
		writeActionError(w, err)
		return
	}
	h.writeFrame(w, h.Console.Users.List.View(), http.StatusOK)
}

func (h *Handlers) GetPartnerRequests(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, console.PagePartnerRequests, h.Console.PartnerRequests.List)
}

func (h *Handlers) ApprovePartner(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}
	writeConfirm(h, w, h.Console.PartnerRequests.List, h.Console.PartnerRequests.RequestApprove(id))
}

func (h *Handlers) DeclinePartner(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}
	writeConfirm(h, w, h.Console.PartnerRequests.List, h.Console.PartnerRequests.RequestDecline(id))
}
