package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"sleeper-league-bot/logging"
)

// JobTimeout bounds one scheduled run
const JobTimeout = 5 * time.Minute

// Scheduler runs jobs on cron specs evaluated in the season timezone
type Scheduler struct {
	cron   *cron.Cron
	runner *JobRunner
	ctx    context.Context
	logger *logging.Logger
}

// cronLogger adapts the package logger to cron's logger interface
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugf("%s %v", msg, keysAndValues)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorf("%s: %v %v", msg, err, keysAndValues)
}

// NewScheduler creates a scheduler; ctx is the parent of every run
func NewScheduler(ctx context.Context, runner *JobRunner, location *time.Location) *Scheduler {
	logger := logging.WithPrefix("Scheduler")
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(location),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner: runner,
		ctx:    ctx,
		logger: logger,
	}
}

// Add schedules a registered job on a standard five-field cron spec.
// An empty spec leaves the job unscheduled.
func (s *Scheduler) Add(spec, job string) error {
	if spec == "" {
		s.logger.Infof("No schedule for %s", job)
		return nil
	}
	if !s.runner.HasJob(job) {
		return fmt.Errorf("%w: %q", ErrUnknownJob, job)
	}

	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(s.ctx, JobTimeout)
		defer cancel()
		s.runner.Run(ctx, job, RunOptions{})
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q for %s: %w", spec, job, err)
	}
	s.logger.Infof("Scheduled %s at %q", job, spec)
	return nil
}

// Start begins running scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Infof("Next run at %s", e.Next.Format(time.RFC1123))
	}
}

// Stop halts the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Len returns the number of scheduled entries
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
