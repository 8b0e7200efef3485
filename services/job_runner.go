package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
)

// PostArchive stores the outcome of every job run
type PostArchive interface {
	SavePost(ctx context.Context, record *models.PostRecord) error
}

// RunOptions control one job run
type RunOptions struct {
	DryRun bool
	// Force ignores the season window
	Force bool
	Week  int
}

// JobRunner gates, builds, delivers and archives registered jobs
type JobRunner struct {
	jobs    map[string]Job
	discord *DiscordService
	window  *SeasonWindow
	archive PostArchive
	now     func() time.Time
	logger  *logging.Logger
}

// NewJobRunner creates a runner delivering through discord
func NewJobRunner(discord *DiscordService, window *SeasonWindow) *JobRunner {
	return &JobRunner{
		jobs:    make(map[string]Job),
		discord: discord,
		window:  window,
		now:     time.Now,
		logger:  logging.WithPrefix("Jobs"),
	}
}

// Register adds jobs, keyed by name
func (r *JobRunner) Register(jobs ...Job) {
	for _, job := range jobs {
		r.jobs[job.Name()] = job
	}
}

// SetArchive enables archiving of run results
func (r *JobRunner) SetArchive(archive PostArchive) {
	r.archive = archive
}

// SetClock replaces the clock used for season gating and timestamps
func (r *JobRunner) SetClock(now func() time.Time) {
	r.now = now
}

// JobNames returns the registered job names, sorted
func (r *JobRunner) JobNames() []string {
	names := make([]string, 0, len(r.jobs))
	for name := range r.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasJob reports whether a job is registered under name
func (r *JobRunner) HasJob(name string) bool {
	_, ok := r.jobs[name]
	return ok
}

// Run executes one job. The returned result is non-nil whenever the job
// exists, including when err is set.
func (r *JobRunner) Run(ctx context.Context, name string, opts RunOptions) (*models.JobResult, error) {
	job, ok := r.jobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJob, name)
	}

	result := &models.JobResult{
		RunID:     uuid.NewString(),
		Job:       name,
		StartedAt: r.now(),
	}
	logger := r.logger.WithPrefix(name).WithPrefix(result.RunID[:8])

	err := r.execute(ctx, job, opts, result, logger)
	result.FinishedAt = r.now()
	if err != nil {
		result.Status = models.JobStatusFailed
		logger.Errorf("Run failed: %v", err)
	} else {
		logger.Infof("Run finished: %s %s", result.Status, result.Reason)
	}

	r.archiveResult(ctx, result, err, logger)
	return result, err
}

func (r *JobRunner) execute(ctx context.Context, job Job, opts RunOptions, result *models.JobResult, logger *logging.Logger) error {
	if job.SeasonGated() && !opts.Force && r.window != nil && !r.window.Contains(result.StartedAt) {
		result.Status = models.JobStatusSkipped
		result.Reason = "out of season " + r.window.String()
		return nil
	}

	msg, err := job.Build(ctx, JobParams{Week: opts.Week})
	if err != nil {
		return err
	}
	result.Message = msg

	if opts.DryRun || r.discord.DryRun() {
		result.Status = models.JobStatusDryRun
		return r.discord.Preview(msg)
	}

	status, err := r.discord.Post(ctx, msg)
	result.HTTPStatus = status
	if err != nil {
		return err
	}
	result.Status = models.JobStatusPosted
	return nil
}

func (r *JobRunner) archiveResult(ctx context.Context, result *models.JobResult, runErr error, logger *logging.Logger) {
	if r.archive == nil {
		return
	}
	if err := r.archive.SavePost(ctx, models.NewPostRecord(result, runErr)); err != nil {
		logger.Warnf("Failed to archive run: %v", err)
	}
}
