package handlers

import (
	"net/http"

	"adminconsole/internal/console"
)

func (h *Handlers) GetNotifications(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, console.PageNotifications, h.Console.Notifications.List,
		"userId", "status", "startDate", "endDate")
}

func (h *Handlers) SendNotification(w http.ResponseWriter, r *http.Request) {
	var form console.SendNotificationForm
	if !decodeJSON(w, r, &form) {
		return
	}

	if err := h.Console.Notifications.Send(r.Context(), form); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeFrame(w, h.Console.Notifications.List.View(), http.StatusCreated)
}

func (h *Handlers) BroadcastNotification(w http.ResponseWriter, r *http.Request) {
	var form console.BroadcastForm
	if !decodeJSON(w, r, &form) {
		return
	}

	if err := h.Console.Notifications.Broadcast(r.Context(), form); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeFrame(w, h.Console.Notifications.List.View(), http.StatusCreated)
}

func (h *Handlers) UpdateNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	var form console.EditNotificationForm
	if !decodeJSON(w, r, &form) {
		return
	}

	if err := h.Console.Notifications.Update(r.Context(), id, form); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeFrame(w, h.Console.Notifications.List.View(), http.StatusOK)
}

func (h *Handlers) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}
	writeConfirm(h, w, h.Console.Notifications.List, h.Console.Notifications.RequestDelete(id))
}
