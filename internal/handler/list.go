package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"adminconsole/internal/listing"
)

// applyQuery maps page query parameters onto the list. Parameters that are
// absent leave the current criteria untouched.
func applyQuery[T any](list *listing.List[T], q url.Values, filters ...string) error {
	if q.Has("tab") {
		if err := list.SetTab(q.Get("tab")); err != nil {
			return err
		}
	}
	if q.Has("reset") {
		list.ClearFilters()
	}
	for _, name := range filters {
		if q.Has(name) {
			if err := list.SetFilter(name, q.Get(name)); err != nil {
				return err
			}
		}
	}
	if q.Has("q") {
		list.SetSearch(q.Get("q"))
		if q.Has("submit") {
			list.FlushSearch()
		}
	}
	if key := q.Get("sort"); key != "" {
		if err := list.SetSort(key, listing.Direction(q.Get("dir"))); err != nil {
			return err
		}
	}
	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: page", listing.ErrUnknownFilter)
		}
		list.SetPage(page)
	}
	return nil
}

// serveList navigates to page, mounts its list and renders the derived view.
// A failed fetch has already queued a toast; the frame carries prior data.
func serveList[T any](h *Handlers, w http.ResponseWriter, r *http.Request, page string, list *listing.List[T], filters ...string) {
	h.Console.Navigate(page)
	_ = list.Mount(r.Context())

	if err := applyQuery(list, r.URL.Query(), filters...); err != nil {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeFrame(w, list.View(), http.StatusOK)
}

// confirmRoutes registers the confirm and cancel verbs for the list's
// pending confirmation.
func confirmRoutes[T any](h *Handlers, r *mux.Router, prefix string, list *listing.List[T]) {
	r.HandleFunc(prefix+"/confirm", func(w http.ResponseWriter, req *http.Request) {
		if err := list.ExecuteConfirm(req.Context()); err != nil {
			writeActionError(w, err)
			return
		}
		h.writeFrame(w, list.View(), http.StatusOK)
	}).Methods(http.MethodPost)

	r.HandleFunc(prefix+"/cancel", func(w http.ResponseWriter, req *http.Request) {
		list.CancelConfirm()
		h.writeFrame(w, list.View(), http.StatusOK)
	}).Methods(http.MethodPost)
}

// sortRoute registers the column header verb: sorting by the active column
// flips its direction, any other column starts ascending.
func sortRoute[T any](h *Handlers, r *mux.Router, prefix string, list *listing.List[T]) {
	r.HandleFunc(prefix+"/sort/{key}", func(w http.ResponseWriter, req *http.Request) {
		if err := list.SortBy(mux.Vars(req)["key"]); err != nil {
			WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.writeFrame(w, list.View(), http.StatusOK)
	}).Methods(http.MethodPost)
}

// writeConfirm renders the view with its freshly queued confirmation.
func writeConfirm[T any](h *Handlers, w http.ResponseWriter, list *listing.List[T], err error) {
	if err != nil {
		writeActionError(w, err)
		return
	}
	h.writeFrame(w, list.View(), http.StatusAccepted)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// decodeJSON reads the request body into v, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// idOrNotFound extracts the numeric path id, answering 404 when it does not parse.
func idOrNotFound(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := pathID(r)
	if err != nil {
		WriteError(w, "Invalid id", http.StatusNotFound)
		return 0, false
	}
	return id, true
}
