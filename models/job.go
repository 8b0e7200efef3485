package models

import (
	"time"
)

// JobStatus is the outcome of a job run
type JobStatus string

const (
	JobStatusPosted  JobStatus = "posted"
	JobStatusDryRun  JobStatus = "dry_run"
	JobStatusSkipped JobStatus = "skipped"
	JobStatusFailed  JobStatus = "failed"
)

// JobResult describes one run of a notification job
type JobResult struct {
	RunID      string          `json:"run_id"`
	Job        string          `json:"job"`
	Status     JobStatus       `json:"status"`
	Reason     string          `json:"reason,omitempty"`
	HTTPStatus int             `json:"http_status,omitempty"`
	Message    *WebhookMessage `json:"message,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

// PostRecord is the archived copy of a job result
type PostRecord struct {
	ID         string          `json:"id" bson:"_id"`
	Job        string          `json:"job" bson:"job"`
	Status     JobStatus       `json:"status" bson:"status"`
	Reason     string          `json:"reason,omitempty" bson:"reason,omitempty"`
	HTTPStatus int             `json:"http_status,omitempty" bson:"http_status,omitempty"`
	Message    *WebhookMessage `json:"message,omitempty" bson:"message,omitempty"`
	Error      string          `json:"error,omitempty" bson:"error,omitempty"`
	StartedAt  time.Time       `json:"started_at" bson:"started_at"`
	FinishedAt time.Time       `json:"finished_at" bson:"finished_at"`
}

// NewPostRecord builds an archive record from a result and its error, if any
func NewPostRecord(result *JobResult, runErr error) *PostRecord {
	record := &PostRecord{
		ID:         result.RunID,
		Job:        result.Job,
		Status:     result.Status,
		Reason:     result.Reason,
		HTTPStatus: result.HTTPStatus,
		Message:    result.Message,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
	}
	if runErr != nil {
		record.Error = runErr.Error()
	}
	return record
}
