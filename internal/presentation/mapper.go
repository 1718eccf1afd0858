// Package presentation maps continuous risk scores to the discrete
// color/label tiers the dashboard renders. The survey result scale and the
// two map overlay scales are independent tables and are never unified:
// incident severity and model danger level come from different upstream
// contracts even where their label vocabularies overlap.
package presentation

import (
	"strings"

	"roadrisk/internal/util"
)

// Tier is one discrete step on the survey result scale.
type Tier struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

// quizTiers in ascending threshold order; a percent below UpTo falls into
// the tier, the last tier catches everything else.
var quizTiers = []struct {
	UpTo float64
	Tier Tier
}{
	{17, Tier{Label: "Very Low", Color: "#2e7d32", Emoji: "🟢"}},
	{34, Tier{Label: "Low", Color: "#558b2f", Emoji: "🍀"}},
	{51, Tier{Label: "Moderate", Color: "#f9a825", Emoji: "🟡"}},
	{67, Tier{Label: "Elevated", Color: "#ef6c00", Emoji: "🟠"}},
	{84, Tier{Label: "High", Color: "#d84315", Emoji: "🔴"}},
}

var extremeTier = Tier{Label: "Extreme", Color: "#b71c1c", Emoji: "🚨"}

// QuizTier maps a risk percent (0–100) onto the six-step survey scale.
func QuizTier(percent float64) Tier {
	for _, t := range quizTiers {
		if percent < t.UpTo {
			return t.Tier
		}
	}
	return extremeTier
}

// SeverityColor colors an incident point by its reported severity.
func SeverityColor(severity string) string {
	switch severity {
	case "high":
		return "#d32f2f"
	case "medium":
		return "#ffa000"
	case "low":
		return "#388e3c"
	default:
		return "#757575"
	}
}

// DangerLevelColor colors a segment by the model's danger level in AI-layer
// mode. The model capitalizes its levels; matching is case-insensitive.
// Separate domain from SeverityColor; do not merge the two tables.
func DangerLevelColor(level string) string {
	switch strings.ToLower(level) {
	case "extreme":
		return "#b71c1c"
	case "high":
		return "#e53935"
	case "moderate":
		return "#fb8c00"
	default:
		return "#43a047"
	}
}

// OverlayOpacity scales marker opacity with the model's danger percent so
// riskier segments read stronger on the map.
func OverlayOpacity(dangerPercent float64) float64 {
	return util.Clamp(0.35+0.55*dangerPercent/100, 0.35, 0.9)
}
