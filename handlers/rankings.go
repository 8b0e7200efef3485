package handlers

import (
	"html/template"
	"net/http"

	"sleeper-league-bot/interfaces"
)

// RankingsHandler serves the power rankings as JSON and HTML
type RankingsHandler struct {
	templates *template.Template
	provider  interfaces.RankingProvider
}

// NewRankingsHandler creates a rankings handler
func NewRankingsHandler(templates *template.Template, provider interfaces.RankingProvider) *RankingsHandler {
	return &RankingsHandler{templates: templates, provider: provider}
}

func (h *RankingsHandler) load(w http.ResponseWriter, r *http.Request) (RankingView, bool) {
	week, ok := queryInt(r, "week")
	if !ok {
		writeError(w, http.StatusBadRequest, "week must be a non-negative integer")
		return RankingView{}, false
	}

	snapshot, names, err := h.provider.Snapshot(r.Context(), week)
	if err != nil {
		logger.Errorf("Rankings for week %d failed: %v", week, err)
		writeError(w, http.StatusBadGateway, "failed to load league data")
		return RankingView{}, false
	}
	return buildRankingView(snapshot, names), true
}

// GetRankingsAPI serves GET /api/rankings?week=N
func (h *RankingsHandler) GetRankingsAPI(w http.ResponseWriter, r *http.Request) {
	view, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// RankingsPage serves GET /rankings?week=N
func (h *RankingsHandler) RankingsPage(w http.ResponseWriter, r *http.Request) {
	view, ok := h.load(w, r)
	if !ok {
		return
	}

	data := struct {
		Title string
		RankingView
	}{
		Title:       "Power Rankings",
		RankingView: view,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "rankings.html", data); err != nil {
		logger.Errorf("Template error: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
