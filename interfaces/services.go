package interfaces

import (
	"context"

	"sleeper-league-bot/models"
	"sleeper-league-bot/rankings"
	"sleeper-league-bot/services"
)

// RankingProvider computes a ranking snapshot with team names for a week.
// Week 0 selects the latest week with matchups; a nil snapshot means no
// week has been played.
type RankingProvider interface {
	Snapshot(ctx context.Context, week int) (*rankings.Snapshot, map[int]string, error)
}

// JobRunner runs notification jobs by name
type JobRunner interface {
	Run(ctx context.Context, name string, opts services.RunOptions) (*models.JobResult, error)
	HasJob(name string) bool
	JobNames() []string
}

// PostStore reads archived job results
type PostStore interface {
	FindRecent(ctx context.Context, job string, limit int) ([]*models.PostRecord, error)
}

// Authenticator issues and validates operator tokens
type Authenticator interface {
	Login(key string) (string, error)
	ValidateToken(token string) (*services.JWTClaims, error)
}

// SourceChecker reports whether the upstream league API answers
type SourceChecker interface {
	HealthCheck(ctx context.Context) bool
}

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}
