package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
	"sleeper-league-bot/rankings"
)

const (
	// BlowoutMargin is the point gap at which a matchup is called a blowout
	BlowoutMargin = 40.0
	// NailBiterMargin is the largest gap still called a nail-biter
	NailBiterMargin = 5.0

	recapTitle = "LinkedIn Zone"
)

// RecapJob posts the weekly score recap with the season power rankings
type RecapJob struct {
	league *LeagueService
	engine *rankings.Engine
	logger *logging.Logger
}

// NewRecapJob creates the weekly recap job
func NewRecapJob(league *LeagueService, engine *rankings.Engine) *RecapJob {
	return &RecapJob{
		league: league,
		engine: engine,
		logger: logging.WithPrefix("Recap"),
	}
}

func (j *RecapJob) Name() string      { return "recap" }
func (j *RecapJob) SeasonGated() bool { return true }

// Build recaps the latest week with matchups at or before the requested week
func (j *RecapJob) Build(ctx context.Context, params JobParams) (*models.WebhookMessage, error) {
	start := params.Week
	if start <= 0 {
		current, err := j.league.CurrentWeek(ctx)
		if err != nil {
			return nil, err
		}
		start = current
	}

	week, matchups, err := j.league.LatestWeekWithMatchups(ctx, start)
	if err != nil {
		return nil, err
	}
	if len(matchups) == 0 {
		j.logger.Infof("No matchups at or before week %d, posting preseason check", start)
		return PreseasonMessage(), nil
	}

	names, err := j.league.TeamNames(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := j.engine.ComputeWithPrior(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to compute power rankings: %w", err)
	}

	return &models.WebhookMessage{Content: FormatRecap(week, matchups, names, snapshot)}, nil
}

// PreseasonMessage is the heartbeat posted before any week has matchups
func PreseasonMessage() *models.WebhookMessage {
	return &models.WebhookMessage{Content: joinContent([]string{
		fmt.Sprintf("🏈 **%s — Preseason Check**", recapTitle),
		"Chair is occupied ✅. Warming up. Watch this space for future commentary.",
	})}
}

type recapTeam struct {
	name   string
	points float64
}

// FormatRecap renders the recap content for one week. matchups must not be empty.
func FormatRecap(week int, matchups []models.Matchup, names map[int]string, snapshot *rankings.Snapshot) string {
	teams := make([]recapTeam, len(matchups))
	for i, m := range matchups {
		teams[i] = recapTeam{name: TeamName(names, m.RosterID), points: float64(m.Points)}
	}

	top, bottom := teams[0], teams[0]
	for _, t := range teams[1:] {
		if t.points > top.points {
			top = t
		}
		if t.points < bottom.points {
			bottom = t
		}
	}

	lines := []string{
		fmt.Sprintf("🏈 **%s — Week %d Recap**", recapTitle, week),
		fmt.Sprintf("• High Score: **%s** (%.2f)", top.name, top.points),
		fmt.Sprintf("• Low Score: **%s** (%.2f)", bottom.name, bottom.points),
	}

	if notes := matchupNotes(matchups, names); len(notes) > 0 {
		lines = append(lines, "")
		lines = append(lines, notes...)
	}

	lines = append(lines, "", fmt.Sprintf("💬 🏆 %s got *endorsed for touchdowns* (%.2f). 🪦 %s, update your status to **Open to Work** (on waivers).",
		top.name, top.points, bottom.name))

	if ranking := FormatRankingLines(snapshot, names); len(ranking) > 0 {
		lines = append(lines, "", rankingsHeading(snapshot.Current.ThroughWeek))
		lines = append(lines, ranking...)
	}
	return joinContent(lines)
}

// matchupNotes calls out blowouts and nail-biters, in matchup id order
func matchupNotes(matchups []models.Matchup, names map[int]string) []string {
	groups := make(map[int][]models.Matchup)
	for _, m := range matchups {
		if m.MatchupID.Valid {
			groups[m.MatchupID.Value] = append(groups[m.MatchupID.Value], m)
		}
	}
	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var notes []string
	for _, id := range ids {
		pair := groups[id]
		if len(pair) != 2 {
			continue
		}
		diff := math.Abs(float64(pair[0].Points) - float64(pair[1].Points))
		switch {
		case diff >= BlowoutMargin:
			notes = append(notes, fmt.Sprintf("💥 **Blowout** M%d: %s vs %s — %.1f pts",
				id, TeamName(names, pair[0].RosterID), TeamName(names, pair[1].RosterID), diff))
		case diff <= NailBiterMargin:
			notes = append(notes, fmt.Sprintf("🧊 **Nail-biter** M%d: decided by %.1f pts", id, diff))
		}
	}
	return notes
}
