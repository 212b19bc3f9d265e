package handlers

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
)

// GetPlayerContext returns the fused signal context for one player.
// GET /api/v1/context/{player}?team=LAD&date=2025-06-14
func (h *Handler) GetPlayerContext(w http.ResponseWriter, r *http.Request) {
	player, err := url.PathUnescape(chi.URLParam(r, "player"))
	if err != nil || player == "" {
		h.errorResponse(w, http.StatusBadRequest, "Invalid player name")
		return
	}

	team := r.URL.Query().Get("team")
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	pc := h.context.GetContext(r.Context(), player, team, date)
	if r.Context().Err() != nil {
		// Client went away mid-aggregation; nothing useful to write.
		return
	}
	h.jsonResponse(w, http.StatusOK, pc)
}
