package handlers

import (
	"net/http"
	"strings"

	"github.com/wonny/rostercast/internal/contracts"
	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/internal/session"
	"github.com/wonny/rostercast/pkg/logger"
	"github.com/wonny/rostercast/pkg/redis"
)

// ProjectionHandler serves stateless roster projections
type ProjectionHandler struct {
	store  *dataset.Store
	cache  *redis.Cache
	logger *logger.Logger
}

// NewProjectionHandler creates a new projection handler
func NewProjectionHandler(store *dataset.Store, cache *redis.Cache, log *logger.Logger) *ProjectionHandler {
	return &ProjectionHandler{
		store:  store,
		cache:  cache,
		logger: log,
	}
}

// ProjectionRequest is the body of POST /api/projections
type ProjectionRequest struct {
	Team    string   `json:"team"`
	Players []string `json:"players"`
}

// Project projects a roster without creating a session
// POST /api/projections
func (h *ProjectionHandler) Project(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ProjectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	d, err := h.store.Current()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	normalized := make([]string, len(req.Players))
	for i, p := range req.Players {
		normalized[i] = dataset.NormalizeName(p)
	}
	key := redis.ProjectionKey(d.Season(), d.Version(), normalized)

	var snap contracts.TeamSnapshot
	if hit, err := h.cache.Get(ctx, key, &snap); err != nil {
		h.logger.WithError(err).Warn("Projection cache read failed")
		dropEntry(ctx, h.cache, h.logger, key)
	} else if hit {
		snap.Name = strings.TrimSpace(req.Team)
		respondJSON(w, http.StatusOK, snap)
		return
	}

	snap, err = session.Project(d, strings.TrimSpace(req.Team), req.Players)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.cache.Set(ctx, key, snap, redis.TTLDaily); err != nil {
		h.logger.WithError(err).Warn("Projection cache write failed")
	}

	h.logger.WithFields(map[string]interface{}{
		"season":  snap.Season,
		"players": snap.Size,
		"wins":    snap.Record.Wins,
	}).Debug("Projection computed")

	respondJSON(w, http.StatusOK, snap)
}
