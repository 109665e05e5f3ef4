package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"adminconsole/internal/console"
)

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.Console.Navigate(console.PageDashboard)

	// On failure the toast is queued and the previous aggregate is kept.
	data, _ := h.Console.Dashboard.Load(r.Context())
	h.writeFrame(w, data, http.StatusOK)
}

func (h *Handlers) GetToasts(w http.ResponseWriter, r *http.Request) {
	h.writeFrame(w, nil, http.StatusOK)
}

func (h *Handlers) DismissToast(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || !h.Toasts.Dismiss(id) {
		WriteError(w, "Toast not found", http.StatusNotFound)
		return
	}
	h.writeFrame(w, nil, http.StatusOK)
}
