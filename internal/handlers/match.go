package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/lineupiq/context-api/internal/namematch"
)

// MatchRequest asks which reference name, if any, a candidate resolves to.
type MatchRequest struct {
	Candidate  string   `json:"candidate" validate:"required"`
	References []string `json:"references" validate:"required,min=1"`
}

// MatchNames resolves a candidate name against a reference roster.
// POST /api/v1/match
func (h *Handler) MatchNames(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "candidate and references are required")
		return
	}

	matched, ok := namematch.BestMatch(req.Candidate, req.References)
	h.jsonResponse(w, http.StatusOK, map[string]interface{}{
		"candidate": req.Candidate,
		"matched":   ok,
		"reference": matched,
	})
}
