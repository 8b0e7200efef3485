package models

// Severity buckets an injury designation
type Severity string

const (
	SeverityNone     Severity = ""
	SeverityCritical Severity = "critical"
	SeverityRisky    Severity = "risky"
)

var (
	criticalTags = map[string]bool{"Out": true, "IR": true, "PUP": true, "Suspended": true}
	riskyTags    = map[string]bool{"Doubtful": true, "Questionable": true, "GTD": true, "DTD": true, "Probable": true}
)

// ClassifyTag maps a canonical Sleeper tag to a severity
func ClassifyTag(tag string) Severity {
	switch {
	case criticalTags[tag]:
		return SeverityCritical
	case riskyTags[tag]:
		return SeverityRisky
	default:
		return SeverityNone
	}
}

// StarterAlert is one flagged starter, e.g. "Patrick Mahomes (KC QB) — Questionable"
type StarterAlert struct {
	PlayerID string   `json:"player_id"`
	Label    string   `json:"label"`
	Tag      string   `json:"tag"`
	Severity Severity `json:"severity"`
}

// TeamHealthReport collects the flagged starters of one roster
type TeamHealthReport struct {
	RosterID int            `json:"roster_id"`
	TeamName string         `json:"team_name"`
	Critical []StarterAlert `json:"critical"`
	Risky    []StarterAlert `json:"risky"`
}

// HasWarnings reports whether any starter was flagged
func (r *TeamHealthReport) HasWarnings() bool {
	return len(r.Critical) > 0 || len(r.Risky) > 0
}
