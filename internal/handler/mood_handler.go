package handlers

import (
	"net/http"

	"adminconsole/internal/console"
)

func (h *Handlers) GetMoods(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, console.PageMoods, h.Console.Moods.List)
}

func (h *Handlers) CreateMood(w http.ResponseWriter, r *http.Request) {
	var form console.MoodForm
	if !decodeJSON(w, r, &form) {
		return
	}

	if err := h.Console.Moods.Create(r.Context(), form); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeFrame(w, h.Console.Moods.List.View(), http.StatusCreated)
}

func (h *Handlers) UpdateMood(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	var form console.MoodForm
	if !decodeJSON(w, r, &form) {
		return
	}

	if err := h.Console.Moods.Update(r.Context(), id, form); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeFrame(w, h.Console.Moods.List.View(), http.StatusOK)
}

func (h *Handlers) DeleteMood(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}
	writeConfirm(h, w, h.Console.Moods.List, h.Console.Moods.RequestDelete(id))
}
