package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sleeper-league-bot/logging"
	"sleeper-league-bot/models"
)

const lineupTitle = "Lineup Health Check"

// acronymTags keep their upper-case spelling when canonicalised
var acronymTags = map[string]bool{"IR": true, "PUP": true, "GTD": true, "DTD": true, "NA": true, "COV": true}

var titleCase = cases.Title(language.English)

// LineupHealthJob warns about starters carrying injury or suspension tags
type LineupHealthJob struct {
	league *LeagueService
	logger *logging.Logger
}

// NewLineupHealthJob creates the lineup health job
func NewLineupHealthJob(league *LeagueService) *LineupHealthJob {
	return &LineupHealthJob{
		league: league,
		logger: logging.WithPrefix("Lineup"),
	}
}

func (j *LineupHealthJob) Name() string      { return "lineup" }
func (j *LineupHealthJob) SeasonGated() bool { return true }

// Build checks every roster's current starters against the player directory
func (j *LineupHealthJob) Build(ctx context.Context, _ JobParams) (*models.WebhookMessage, error) {
	var (
		rosters []models.Roster
		names   map[int]string
		players map[string]models.Player
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rosters, names, err = j.league.Rosters(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		players, err = j.league.Sleeper().GetPlayers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	reports := CheckLineups(rosters, names, players)
	j.logger.Infof("%d of %d rosters have flagged starters", len(reports), len(rosters))
	return FormatLineupMessage(reports), nil
}

// CanonicalTag normalises a Sleeper tag: "questionable" becomes
// "Questionable", "ir" becomes "IR"
func CanonicalTag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if upper := strings.ToUpper(tag); acronymTags[upper] {
		return upper
	}
	return titleCase.String(strings.ToLower(tag))
}

// StarterLabel renders "Full Name (TEAM POS) — Tag"
func StarterLabel(playerID string, p *models.Player, tag string) string {
	name := p.DisplayName(playerID)
	if detail := strings.TrimSpace(p.Team + " " + p.PrimaryPosition()); detail != "" {
		name = fmt.Sprintf("%s (%s)", name, detail)
	}
	return name + " — " + tag
}

// CheckLineups returns one report per roster with at least one flagged
// starter, in roster id order. Unknown player ids are ignored.
func CheckLineups(rosters []models.Roster, names map[int]string, players map[string]models.Player) []models.TeamHealthReport {
	sorted := make([]models.Roster, len(rosters))
	copy(sorted, rosters)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].RosterID < sorted[b].RosterID })

	var reports []models.TeamHealthReport
	for _, r := range sorted {
		report := models.TeamHealthReport{RosterID: r.RosterID, TeamName: TeamName(names, r.RosterID)}

		for _, id := range r.Starters {
			p, ok := players[id]
			if !ok {
				continue
			}
			tag := CanonicalTag(p.Tag())
			severity := models.ClassifyTag(tag)
			if severity == models.SeverityNone {
				continue
			}

			alert := models.StarterAlert{PlayerID: id, Label: StarterLabel(id, &p, tag), Tag: tag, Severity: severity}
			if severity == models.SeverityCritical {
				report.Critical = append(report.Critical, alert)
			} else {
				report.Risky = append(report.Risky, alert)
			}
		}

		if report.HasWarnings() {
			reports = append(reports, report)
		}
	}
	return reports
}

// FormatLineupMessage renders the reports as one embed, or an all-clear embed
func FormatLineupMessage(reports []models.TeamHealthReport) *models.WebhookMessage {
	if len(reports) == 0 {
		return &models.WebhookMessage{Embeds: []models.Embed{{
			Title:       lineupTitle,
			Description: "All clear ✅ — no risky/OUT starters detected.",
			Footer:      &models.EmbedFooter{Text: "Note: Injury tags can linger through bye weeks."},
		}}}
	}

	fields := make([]models.EmbedField, 0, len(reports))
	for _, report := range reports {
		if len(fields) == models.MaxEmbedFields {
			break
		}
		fields = append(fields, models.EmbedField{
			Name:  report.TeamName,
			Value: models.Truncate(healthFieldValue(report), models.MaxFieldValueLength),
		})
	}

	return &models.WebhookMessage{Embeds: []models.Embed{{
		Title:       lineupTitle,
		Description: "Heads up on starters with injury/suspension designations.",
		Fields:      fields,
		Footer:      &models.EmbedFooter{Text: "Sleeper injury tags; bye weeks can retain last week’s tag."},
	}}}
}

func healthFieldValue(report models.TeamHealthReport) string {
	var sections []string
	if len(report.Critical) > 0 {
		sections = append(sections, "**Critical (bench these)**:\n• "+strings.Join(alertLabels(report.Critical), "\n• "))
	}
	if len(report.Risky) > 0 {
		sections = append(sections, "**Risky (monitor)**:\n• "+strings.Join(alertLabels(report.Risky), "\n• "))
	}
	return strings.Join(sections, "\n\n")
}

func alertLabels(alerts []models.StarterAlert) []string {
	labels := make([]string, len(alerts))
	for i, a := range alerts {
		labels[i] = a.Label
	}
	return labels
}
