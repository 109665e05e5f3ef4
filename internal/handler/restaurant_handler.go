package handlers

import (
	"net/http"

	"adminconsole/internal/console"
)

func (h *Handlers) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, console.PageRestaurants, h.Console.Restaurants.List)
}

func (h *Handlers) GetRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	item, err := h.Console.Restaurants.Detail(id)
	if err != nil {
		writeActionError(w, err)
		return
	}
	h.writeFrame(w, item, http.StatusOK)
}

func (h *Handlers) UpdateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	var form console.RestaurantForm
	if !decodeJSON(w, r, &form) {
		return
	}

	if err := h.Console.Restaurants.Update(r.Context(), id, form); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeFrame(w, h.Console.Restaurants.List.View(), http.StatusOK)
}

func (h *Handlers) ApproveRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}
	writeConfirm(h, w, h.Console.Restaurants.List, h.Console.Restaurants.RequestApprove(id))
}

func (h *Handlers) DeclineRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}

	var form console.DeclineForm
	if !decodeJSON(w, r, &form) {
		return
	}

	if err := h.Console.Restaurants.Decline(r.Context(), id, form); err != nil {
		writeFormError(w, err)
		return
	}
	h.writeFrame(w, h.Console.Restaurants.List.View(), http.StatusOK)
}

func (h *Handlers) DeleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, ok := idOrNotFound(w, r)
	if !ok {
		return
	}
	writeConfirm(h, w, h.Console.Restaurants.List, h.Console.Restaurants.RequestDelete(id))
}
