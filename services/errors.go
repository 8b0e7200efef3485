package services

import "errors"

var (
	// ErrSourceUnavailable means an upstream API could not be reached or
	// answered with a non-success status
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedResponse means an upstream body could not be decoded
	ErrMalformedResponse = errors.New("malformed response")

	// ErrWebhookRejected means Discord answered the webhook with a non-success status
	ErrWebhookRejected = errors.New("webhook rejected")

	// ErrNotConfigured means a required collaborator or setting is missing
	ErrNotConfigured = errors.New("not configured")

	// ErrUnknownJob means no job is registered under the requested name
	ErrUnknownJob = errors.New("unknown job")
)
