package band

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/gorjanv/bandpractise/internal/auth"
	"github.com/gorjanv/bandpractise/internal/ordering"
	"github.com/gorjanv/bandpractise/internal/rating"
	"github.com/gorjanv/bandpractise/internal/setlock"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError logs err under op and maps it to a status.
func writeStoreError(w http.ResponseWriter, op string, err error) {
	var sweep *ordering.SweepError
	switch {
	case errors.As(err, &sweep):
		log.Printf("bandpractise: %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, sweep.Collection+" update incomplete")
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, ordering.ErrDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, setlock.ErrLocked):
		writeError(w, http.StatusConflict, setlock.ErrLocked.Error())
	case errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, rating.ErrOutOfRange),
		errors.Is(err, ordering.ErrNotPermutation),
		errors.Is(err, ordering.ErrInvalidPosition):
		writeError(w, http.StatusBadRequest, errors.Cause(err).Error())
	default:
		log.Printf("bandpractise: %s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// uuidParam reads a path parameter that must be a UUID.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	return validUUID(w, name, raw)
}

func validUUID(w http.ResponseWriter, name, raw string) (string, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return "", false
	}
	return id.String(), true
}

// currentUser is only called behind auth.RequireUser.
func currentUser(r *http.Request) auth.User {
	u, _ := auth.UserFromContext(r.Context())
	return u
}
