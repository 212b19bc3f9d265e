package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/lineupiq/context-api/internal/pattern"
)

// GetBounceBackAnalysis runs slump-recovery analysis against the stored
// game log for one player.
// GET /api/v1/pattern/{player}?team=LAD
func (h *Handler) GetBounceBackAnalysis(w http.ResponseWriter, r *http.Request) {
	player, err := url.PathUnescape(chi.URLParam(r, "player"))
	if err != nil || player == "" {
		h.errorResponse(w, http.StatusBadRequest, "Invalid player name")
		return
	}
	team := r.URL.Query().Get("team")

	history, err := h.store.History(r.Context(), player, team)
	if err != nil {
		h.logger.Errorw("Failed to load game history", "player", player, "team", team, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to load game history")
		return
	}
	if len(history) == 0 {
		h.errorResponse(w, http.StatusNotFound, "No game history for player")
		return
	}

	result := pattern.Analyze(history, h.analysis)
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"player":   player,
		"team":     team,
		"games":    len(history),
		"analysis": result,
	})
}
