package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LooseFloat decodes a JSON number, numeric string, or null. Anything that
// cannot be read as a number decodes to 0 instead of failing the payload.
type LooseFloat float64

func (f *LooseFloat) UnmarshalJSON(data []byte) error {
	*f = 0
	raw := strings.TrimSpace(string(data))
	if raw == "" || raw == "null" {
		return nil
	}
	raw = strings.Trim(raw, `"`)
	if parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		*f = LooseFloat(parsed)
	}
	return nil
}

// OptionalInt decodes an integer that may be missing, null, or a string.
type OptionalInt struct {
	Value int
	Valid bool
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	*o = OptionalInt{}
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		return nil
	}
	if parsed, err := strconv.Atoi(raw); err == nil {
		*o = OptionalInt{Value: parsed, Valid: true}
		return nil
	}
	if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed == float64(int(parsed)) {
		*o = OptionalInt{Value: int(parsed), Valid: true}
	}
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// NFLState is the response of /state/nfl
type NFLState struct {
	Week        OptionalInt `json:"week"`
	Leg         OptionalInt `json:"leg"`
	Season      string      `json:"season"`
	SeasonType  string      `json:"season_type"`
	DisplayWeek OptionalInt `json:"display_week"`
}

// CurrentWeek returns week, then leg, then 1
func (s NFLState) CurrentWeek() int {
	if s.Week.Valid && s.Week.Value > 0 {
		return s.Week.Value
	}
	if s.Leg.Valid && s.Leg.Value > 0 {
		return s.Leg.Value
	}
	return 1
}

// League is the subset of /league/{id} the jobs use
type League struct {
	LeagueID     string `json:"league_id"`
	Name         string `json:"name"`
	Season       string `json:"season"`
	Status       string `json:"status"`
	TotalRosters int    `json:"total_rosters"`
}

// Roster is an entry of /league/{id}/rosters
type Roster struct {
	RosterID int      `json:"roster_id"`
	OwnerID  string   `json:"owner_id"`
	Starters []string `json:"starters"`
	Players  []string `json:"players"`
}

// UserMetadata carries the user's custom team name
type UserMetadata struct {
	TeamName string `json:"team_name"`
}

// User is an entry of /league/{id}/users
type User struct {
	UserID      string       `json:"user_id"`
	DisplayName string       `json:"display_name"`
	Metadata    UserMetadata `json:"metadata"`
}

// TeamName prefers the custom team name over the display name
func (u *User) TeamName() string {
	if u == nil {
		return ""
	}
	if name := strings.TrimSpace(u.Metadata.TeamName); name != "" {
		return name
	}
	return strings.TrimSpace(u.DisplayName)
}

// RosterLabel is the fallback display name for an unowned roster
func RosterLabel(rosterID int) string {
	return fmt.Sprintf("Roster %d", rosterID)
}

// Matchup is an entry of /league/{id}/matchups/{week}
type Matchup struct {
	RosterID  int         `json:"roster_id"`
	MatchupID OptionalInt `json:"matchup_id"`
	Points    LooseFloat  `json:"points"`
	Starters  []string    `json:"starters"`
}

// ToWeeklyRow converts a raw matchup into a well-formed ranking input row
func (m Matchup) ToWeeklyRow() WeeklyMatchRow {
	return WeeklyMatchRow{
		TeamID:    m.RosterID,
		Points:    float64(m.Points),
		MatchupID: m.MatchupID.Value,
		Grouped:   m.MatchupID.Valid,
	}
}

// Player is an entry of the /players/nfl directory
type Player struct {
	PlayerID         string   `json:"player_id"`
	FullName         string   `json:"full_name"`
	FirstName        string   `json:"first_name"`
	LastName         string   `json:"last_name"`
	Position         string   `json:"position"`
	FantasyPositions []string `json:"fantasy_positions"`
	Team             string   `json:"team"`
	Status           string   `json:"status"`
	InjuryStatus     string   `json:"injury_status"`
}

// DisplayName builds "First Last", falling back to last name then the id
func (p *Player) DisplayName(fallback string) string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	parts := make([]string, 0, 2)
	for _, part := range []string{p.FirstName, p.LastName} {
		if s := strings.TrimSpace(part); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	return fallback
}

// PrimaryPosition returns position, or the first fantasy position
func (p *Player) PrimaryPosition() string {
	if p.Position != "" {
		return p.Position
	}
	if len(p.FantasyPositions) > 0 {
		return p.FantasyPositions[0]
	}
	return ""
}

// Tag returns the injury designation, preferring injury_status over status
func (p *Player) Tag() string {
	if s := strings.TrimSpace(p.InjuryStatus); s != "" {
		return s
	}
	return strings.TrimSpace(p.Status)
}
