package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rp-projects/netball-api/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

func respondError(w http.ResponseWriter, status int, message string, err error) {
	body := map[string]string{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	respondJSON(w, status, body)
}

// statusForError maps the domain error taxonomy to HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUnknownDomain), errors.Is(err, domain.ErrAlreadyAnalyzed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
