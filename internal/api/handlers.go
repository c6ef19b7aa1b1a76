// Package api serves the read-only query surface over stored opportunities.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/prop-edge/internal/repository"
)

// DatabasePinger checks backing-store connectivity for the health endpoint.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	betRepo      repository.EVBetRepository
	db           DatabasePinger
	logger       *logrus.Entry
	version      string
	defaultLimit int
	maxLimit     int
}

// NewHandler creates a new handler with dependencies
func NewHandler(betRepo repository.EVBetRepository, db DatabasePinger, logger *logrus.Logger, version string, defaultLimit, maxLimit int) *Handler {
	return &Handler{
		betRepo:      betRepo,
		db:           db,
		logger:       logger.WithField("component", "api"),
		version:      version,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// Root describes the service and its endpoints
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"service": "prop-edge",
		"version": h.version,
		"endpoints": map[string]string{
			"bets":   "/bets",
			"stats":  "/bets/stats",
			"health": "/health",
		},
	})
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		respondError(w, h.logger, http.StatusServiceUnavailable, "database unhealthy", err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"service":   "prop-edge",
	})
}

// GetBets retrieves active bets with optional filtering
// Query params: bookmaker, sport, market, player, min_ev, max_ev, limit
func (h *Handler) GetBets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	limit := parseIntParam(r, "limit", h.defaultLimit)
	if limit > h.maxLimit {
		limit = h.maxLimit
	}
	if limit < 1 {
		limit = 1
	}

	filter := repository.BetFilter{
		Bookmaker: r.URL.Query().Get("bookmaker"),
		SportKey:  r.URL.Query().Get("sport"),
		Market:    r.URL.Query().Get("market"),
		Player:    r.URL.Query().Get("player"),
		MinEV:     parseFloatParam(r, "min_ev"),
		MaxEV:     parseFloatParam(r, "max_ev"),
		Limit:     limit,
	}

	bets, err := h.betRepo.ActiveBets(ctx, filter)
	if err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "failed to retrieve bets", err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"bets":  bets,
		"count": len(bets),
		"limit": limit,
	})
}

// GetBetStats summarizes the stored bet population
func (h *Handler) GetBetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	stats, err := h.betRepo.Statistics(ctx)
	if err != nil {
		respondError(w, h.logger, http.StatusInternalServerError, "failed to retrieve statistics", err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, stats)
}
