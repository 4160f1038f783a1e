package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/msomdec/rms-content/internal/domain"
	"github.com/msomdec/rms-content/internal/logging"
)

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, must-revalidate")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// readJSON decodes the request body into the given destination.
func readJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeUnauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "Unauthorized.")
}

// respondError maps a service error onto the API envelope. Validation and
// lookup failures are reported with their message; anything else is logged
// and hidden behind a generic 500.
func respondError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeUnauthorized(w)
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrDuplicateAsset),
		errors.Is(err, domain.ErrDuplicateID),
		errors.Is(err, domain.ErrAssetMissing),
		errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrDuplicateUsername):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logging.FromContext(r.Context()).Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}

func methodUnavailable(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, r.Method+" method is unavailable.")
}
