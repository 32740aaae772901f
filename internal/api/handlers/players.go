package handlers

import (
	"net/http"
	"strconv"

	"github.com/wonny/rostercast/internal/contracts"
	"github.com/wonny/rostercast/internal/dataset"
	"github.com/wonny/rostercast/pkg/logger"
	"github.com/wonny/rostercast/pkg/redis"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// PlayerHandler serves dataset lookups
type PlayerHandler struct {
	store  *dataset.Store
	cache  *redis.Cache
	logger *logger.Logger
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(store *dataset.Store, cache *redis.Cache, log *logger.Logger) *PlayerHandler {
	return &PlayerHandler{
		store:  store,
		cache:  cache,
		logger: log,
	}
}

// PlayerSearchResponse is the search result envelope
type PlayerSearchResponse struct {
	Season  string                   `json:"season"`
	Query   string                   `json:"query"`
	Players []contracts.PlayerSeason `json:"players"`
}

// Search finds players by name
// GET /api/players?q=green&limit=10
func (h *PlayerHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")

	limit := defaultSearchLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			limit = min(n, maxSearchLimit)
		}
	}

	d, err := h.store.Current()
	if err != nil {
		respondDomainError(w, err)
		return
	}

	key := redis.SearchKey(d.Season(), d.Version(), query, limit)
	var cached PlayerSearchResponse
	if hit, err := h.cache.Get(ctx, key, &cached); err != nil {
		h.logger.WithError(err).Warn("Search cache read failed")
		dropEntry(ctx, h.cache, h.logger, key)
	} else if hit {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	players := d.Search(query, limit)
	if players == nil {
		players = []contracts.PlayerSeason{}
	}
	resp := PlayerSearchResponse{Season: d.Season(), Query: query, Players: players}

	if err := h.cache.Set(ctx, key, resp, redis.TTLLong); err != nil {
		h.logger.WithError(err).Warn("Search cache write failed")
	}

	respondJSON(w, http.StatusOK, resp)
}
