package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"sleeper-league-bot/interfaces"
	"sleeper-league-bot/models"
	"sleeper-league-bot/services"
)

// JobsHandler triggers jobs and lists archived runs
type JobsHandler struct {
	runner interfaces.JobRunner
	posts  interfaces.PostStore
}

// NewJobsHandler creates a jobs handler; posts may be nil when archiving is off
func NewJobsHandler(runner interfaces.JobRunner, posts interfaces.PostStore) *JobsHandler {
	return &JobsHandler{runner: runner, posts: posts}
}

type runFailure struct {
	Error  string            `json:"error"`
	Result *models.JobResult `json:"result"`
}

// ListJobs serves GET /api/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"jobs": h.runner.JobNames()})
}

// RunJob serves POST /api/jobs/{job}/run?dry_run=true&force=true&week=N
func (h *JobsHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["job"]
	if !h.runner.HasJob(name) {
		writeError(w, http.StatusNotFound, "unknown job "+name)
		return
	}
	week, ok := queryInt(r, "week")
	if !ok {
		writeError(w, http.StatusBadRequest, "week must be a non-negative integer")
		return
	}

	opts := services.RunOptions{
		DryRun: queryBool(r, "dry_run"),
		Force:  queryBool(r, "force"),
		Week:   week,
	}
	result, err := h.runner.Run(r.Context(), name, opts)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, services.ErrUnknownJob) {
			status = http.StatusNotFound
		}
		if result == nil {
			writeError(w, status, err.Error())
			return
		}
		writeJSON(w, status, runFailure{Error: err.Error(), Result: result})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListPosts serves GET /api/posts?job=&limit=
func (h *JobsHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	if h.posts == nil {
		writeError(w, http.StatusNotFound, "post archive is disabled")
		return
	}
	limit, ok := queryInt(r, "limit")
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}

	records, err := h.posts.FindRecent(r.Context(), r.URL.Query().Get("job"), limit)
	if err != nil {
		logger.Errorf("Listing posts failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to read archive")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"posts": records})
}
