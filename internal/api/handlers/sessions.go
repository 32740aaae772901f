package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/rostercast/internal/session"
	"github.com/wonny/rostercast/pkg/logger"
)

// SessionHandler serves the interactive roster-building workflow
// ⭐ SSOT: session HTTP endpoints live here only
type SessionHandler struct {
	manager *session.Manager
	logger  *logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager *session.Manager, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		logger:  log,
	}
}

type createSessionRequest struct {
	Name string `json:"name"`
}

type addPlayerRequest struct {
	Name string `json:"name"`
}

// Create starts a new empty roster
// POST /api/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	// the body is optional; an unnamed roster is allowed
	var req createSessionRequest
	if err := decodeBody(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.manager.Create(strings.TrimSpace(req.Name))
	if err != nil {
		h.logger.WithError(err).Warn("Session create rejected")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, s.Snapshot())
}

// Get returns a session snapshot
// GET /api/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, s.Snapshot())
}

// Delete ends a session
// DELETE /api/sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Delete(mux.Vars(r)["id"]); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddPlayer adds a player by free-text name
// POST /api/sessions/{id}/players {"name": "lebron james"}
func (h *SessionHandler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req addPlayerRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := s.AddPlayer(r.Context(), req.Name)
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"session_id": s.ID,
			"input":      req.Name,
		}).Debug("Add player rejected")
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// RemovePlayer removes a player from the roster
// DELETE /api/sessions/{id}/players/{name}
func (h *SessionHandler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	snap, err := s.RemovePlayer(mux.Vars(r)["name"])
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// Clear empties the roster
// DELETE /api/sessions/{id}/players
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	snap, err := s.Clear()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

func (h *SessionHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.manager.Get(mux.Vars(r)["id"])
	if err != nil {
		respondDomainError(w, err)
		return nil, false
	}
	return s, true
}
