package handlers

import (
	"net/http"

	"sleeper-league-bot/interfaces"
)

// HealthHandler reports upstream and archive reachability
type HealthHandler struct {
	source  interfaces.SourceChecker
	archive interfaces.Pinger
}

// NewHealthHandler creates a health handler; archive may be nil
func NewHealthHandler(source interfaces.SourceChecker, archive interfaces.Pinger) *HealthHandler {
	return &HealthHandler{source: source, archive: archive}
}

// Health answers 200 when every configured dependency is reachable, 503 otherwise
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]string{"status": "ok", "sleeper": "ok", "archive": "disabled"}

	if !h.source.HealthCheck(r.Context()) {
		status = http.StatusServiceUnavailable
		body["sleeper"] = "unreachable"
	}
	if h.archive != nil {
		body["archive"] = "ok"
		if err := h.archive.Ping(r.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body["archive"] = "unreachable"
		}
	}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	writeJSON(w, status, body)
}
