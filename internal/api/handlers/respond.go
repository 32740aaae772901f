package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/internal/player"
	"github.com/wonny/rostercast/internal/session"
	"github.com/wonny/rostercast/internal/team"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrBlankName):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrUnknownPlayer),
		errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, team.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrRosterFull),
		errors.Is(err, team.ErrDuplicatePlayer):
		return http.StatusConflict
	case errors.Is(err, session.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, player.ErrInvalidStatistics):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrTooManySessions),
		errors.Is(err, dataset.ErrNotLoaded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondDomainError writes err with its mapped status; 5xx details stay in logs
func respondDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		respondError(w, status, "Internal server error")
		return
	}
	respondError(w, status, err.Error())
}

// decodeBody decodes a JSON request body, rejecting unknown fields
func decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}
