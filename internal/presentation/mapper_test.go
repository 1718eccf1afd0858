package presentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuizTierBoundaries(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{0, "Very Low"},
		{16.999, "Very Low"},
		{17, "Low"},
		{33.999, "Low"},
		{34, "Moderate"},
		{50.999, "Moderate"},
		{51, "Elevated"},
		{66.999, "Elevated"},
		{67, "High"},
		{83.999, "High"},
		{84, "Extreme"},
		{100, "Extreme"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, QuizTier(tt.percent).Label, "percent=%v", tt.percent)
	}
}

func TestQuizTierCarriesColorAndEmoji(t *testing.T) {
	for _, percent := range []float64{0, 20, 40, 60, 80, 95} {
		tier := QuizTier(percent)
		assert.NotEmpty(t, tier.Color, "percent=%v", percent)
		assert.NotEmpty(t, tier.Emoji, "percent=%v", percent)
	}
}

func TestSeverityColor(t *testing.T) {
	assert.Equal(t, "#d32f2f", SeverityColor("high"))
	assert.Equal(t, "#ffa000", SeverityColor("medium"))
	assert.Equal(t, "#388e3c", SeverityColor("low"))
	assert.Equal(t, "#757575", SeverityColor(""))
	assert.Equal(t, "#757575", SeverityColor("weird"))
}

func TestDangerLevelColor(t *testing.T) {
	assert.Equal(t, "#b71c1c", DangerLevelColor("extreme"))
	assert.Equal(t, "#e53935", DangerLevelColor("high"))
	assert.Equal(t, "#fb8c00", DangerLevelColor("moderate"))
	assert.Equal(t, "#e53935", DangerLevelColor("High")) // model capitalizes levels
	assert.Equal(t, "#43a047", DangerLevelColor("low"))
	assert.Equal(t, "#43a047", DangerLevelColor(""))
}

func TestScalesAreIndependent(t *testing.T) {
	// "high" exists in both vocabularies but the scales are separate
	// domains and must map to different colors.
	assert.NotEqual(t, SeverityColor("high"), DangerLevelColor("high"))
}

func TestOverlayOpacity(t *testing.T) {
	assert.InDelta(t, 0.35, OverlayOpacity(0), 1e-9)
	assert.InDelta(t, 0.9, OverlayOpacity(100), 1e-9)
	assert.InDelta(t, 0.9, OverlayOpacity(250), 1e-9)
	mid := OverlayOpacity(50)
	assert.Greater(t, mid, 0.35)
	assert.Less(t, mid, 0.9)
}
