package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ccaruso/gestion-ingresos/auth"
	"github.com/ccaruso/gestion-ingresos/httpx"
	"github.com/ccaruso/gestion-ingresos/internal/store"
)

// currentUserID reads the authenticated user from the request context. The
// auth middleware guarantees it is set on protected routes.
func currentUserID(r *http.Request) uint {
	uid, _ := auth.UserIDFromContext(r.Context())
	return uid
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	return true
}

// writeStoreError maps the store's outcomes onto the HTTP error taxonomy.
// Not-found is uniform: callers cannot tell "absent" from "not yours".
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, store.ErrConflict):
		httpx.JSONError(w, http.StatusConflict, "conflict", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

// Short and full date renderings used by the drill-down and detail views.
func shortDate(t time.Time) string { return t.Format("02/01") }
func fullDate(t time.Time) string  { return t.Format("02/01/2006") }
