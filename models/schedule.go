package models

import (
	"regexp"
)

var (
	domeRoof        = regexp.MustCompile(`(?i)dome`)
	retractableRoof = regexp.MustCompile(`(?i)retractable`)
)

// ScheduledGame is one row of the nflverse games schedule
type ScheduledGame struct {
	Season   int    `json:"season"`
	Week     int    `json:"week"`
	GameType string `json:"game_type"`
	Gameday  string `json:"gameday"`  // YYYY-MM-DD
	Gametime string `json:"gametime"` // HH:MM, Eastern
	Home     string `json:"home"`
	Away     string `json:"away"`
	Stadium  string `json:"stadium"`
	Location string `json:"location"`
	Roof     string `json:"roof"`
}

// Matchup returns "AWAY @ HOME"
func (g ScheduledGame) Matchup() string {
	return g.Away + " @ " + g.Home
}

// IsDome reports a closed roof; retractable roofs are not domes
func (g ScheduledGame) IsDome() bool {
	return domeRoof.MatchString(g.Roof)
}

// IsRetractable reports a retractable roof
func (g ScheduledGame) IsRetractable() bool {
	return retractableRoof.MatchString(g.Roof)
}

// RoofLabel is "retractable", "dome", or "outdoors"
func (g ScheduledGame) RoofLabel() string {
	switch {
	case g.IsRetractable():
		return "retractable"
	case g.IsDome():
		return "dome"
	default:
		return "outdoors"
	}
}
