package templates

import (
	"fmt"
	"html/template"
	"strings"

	"sleeper-league-bot/models"
)

// GetTemplateFuncs returns the template function map for HTML templates
func GetTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Basic math functions
		"add": func(a, b int) int { return a + b },

		// String functions
		"lower": strings.ToLower,

		// Ranking functions
		"formatScore":   formatScore,
		"movementClass": movementClass,
		"movementText":  movementText,
		"scoreWidth":    scoreWidth,
	}
}

// formatScore renders a 0-100 display score with one decimal
func formatScore(score float64) string {
	return fmt.Sprintf("%.1f", score)
}

// movementClass returns the CSS class for a rank movement
func movementClass(m models.RankMovement) string {
	switch {
	case !m.Known:
		return "move-new"
	case m.Delta > 0:
		return "move-up"
	case m.Delta < 0:
		return "move-down"
	default:
		return "move-flat"
	}
}

func movementText(m models.RankMovement) string {
	return m.Symbol()
}

// scoreWidth clamps a score to a CSS percentage for the score bar
func scoreWidth(score float64) string {
	switch {
	case score < 0:
		score = 0
	case score > 100:
		score = 100
	}
	return fmt.Sprintf("%.0f%%", score)
}
