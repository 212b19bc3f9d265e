package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/lineupiq/context-api/internal/models"
)

// IngestGameLogs handles POST /api/v1/ingest/games. The body is
// newline-separated JSON, one game-log entry per line; malformed or invalid
// lines are skipped, a full queue stops the batch.
func (h *Handler) IngestGameLogs(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	defer r.Body.Close()

	lines := strings.Split(string(body), "\n")
	accepted := 0
	skipped := 0
	dropped := 0
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var entry models.GameLogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			h.logger.Warnw("Failed to unmarshal game-log entry", "lineNum", i, "error", err)
			skipped++
			continue
		}
		if err := h.validator.Struct(&entry); err != nil {
			h.logger.Warnw("Game-log entry failed validation", "lineNum", i, "error", err)
			skipped++
			continue
		}

		if !h.pool.Enqueue(entry) {
			h.logger.Warn("Ingest queue full, dropping remaining entries in batch")
			dropped = countRemaining(lines[i:])
			break
		}
		accepted++
	}

	h.jsonResponse(w, http.StatusAccepted, map[string]interface{}{
		"status":   "accepted",
		"accepted": accepted,
		"skipped":  skipped,
		"dropped":  dropped,
	})
}

func countRemaining(lines []string) int {
	n := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
