// Package explain turns per-feature SHAP contributions into directional
// display signals. Pure functions over the model response; no I/O.
package explain

import (
	"math"
	"sort"

	"roadrisk/internal/domain"
)

// Direction classifies the sign of a SHAP contribution.
type Direction string

const (
	DirectionPushesHigher Direction = "pushes_higher"
	DirectionPullsLower   Direction = "pulls_lower"
	DirectionNeutral      Direction = "neutral"
)

// protectiveFeatures get a softened display phrase when their contribution
// pushes the predicted risk higher. This is a display-level override only;
// the stored value and direction keep the model's sign.
var protectiveFeatures = map[string]struct{}{
	domain.FeaturePatient:           {},
	domain.FeatureCareful:           {},
	domain.FeatureDistressReduction: {},
}

// Entry is the derived interpretation for one feature. Never persisted;
// recomputed from the response on demand.
type Entry struct {
	Feature            string    `json:"feature"`
	Value              float64   `json:"value"`
	Direction          Direction `json:"direction"`
	PercentOfMagnitude *int      `json:"percent_of_magnitude,omitempty"`
	DisplayText        string    `json:"display_text"`
}

// DirectionOf classifies a signed contribution.
func DirectionOf(value float64) Direction {
	switch {
	case value > 0:
		return DirectionPushesHigher
	case value < 0:
		return DirectionPullsLower
	default:
		return DirectionNeutral
	}
}

// PercentOfMagnitude returns the feature's share of the total absolute
// contribution, rounded to a whole percent. Nil when the map is absent or
// the total magnitude is zero — there is no meaningful share to report.
func PercentOfMagnitude(values map[string]float64, feature string) *int {
	if len(values) == 0 {
		return nil
	}
	var total float64
	for _, v := range values {
		total += math.Abs(v)
	}
	if total == 0 {
		return nil
	}
	v, ok := values[feature]
	if !ok {
		return nil
	}
	pct := int(math.Round(100 * math.Abs(v) / total))
	return &pct
}

// DisplayText renders the direction for one feature. Protective traits that
// push risk higher read as a limited protective effect instead of the
// generic phrase.
func DisplayText(feature string, direction Direction) string {
	switch direction {
	case DirectionPushesHigher:
		if _, ok := protectiveFeatures[feature]; ok {
			return "limited protective effect"
		}
		return "pushed risk higher"
	case DirectionPullsLower:
		return "pulled risk lower"
	default:
		return "no measurable effect"
	}
}

// Interpret derives display entries for every feature in the SHAP map,
// ordered by absolute contribution descending (ties broken by name).
func Interpret(values map[string]float64) []Entry {
	entries := make([]Entry, 0, len(values))
	for feature, value := range values {
		direction := DirectionOf(value)
		entries = append(entries, Entry{
			Feature:            feature,
			Value:              value,
			Direction:          direction,
			PercentOfMagnitude: PercentOfMagnitude(values, feature),
			DisplayText:        DisplayText(feature, direction),
		})
	}
	sort.Slice(entries, func(a, b int) bool {
		av, bv := math.Abs(entries[a].Value), math.Abs(entries[b].Value)
		if av != bv {
			return av > bv
		}
		return entries[a].Feature < entries[b].Feature
	})
	return entries
}
