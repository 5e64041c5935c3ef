package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/wishflow/wishflow/internal/model"
	"github.com/wishflow/wishflow/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// userParam extracts and validates the {user} path segment. An invalid
// identifier is rejected before any store call.
func userParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	user := chi.URLParam(r, "user")
	if !model.ValidUserID(user) {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return "", false
	}
	return user, true
}

// writeStoreError maps store errors onto HTTP statuses. A not-found response
// does not distinguish a missing row from one owned by another user or in a
// disallowed status.
func writeStoreError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case store.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		logger.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "storage failure")
	}
}
