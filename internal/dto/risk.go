package dto

// Position is a canonical coordinate pair in render output
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CurrentRiskRequest asks for ambient risk at a point in time.
// Lat/Lng stay loosely typed; upstream clients send numbers or
// stringified numbers interchangeably.
type CurrentRiskRequest struct {
	Lat       interface{} `json:"lat"`
	Lng       interface{} `json:"lng"`
	Timestamp int64       `json:"timestamp,omitempty"`
}

// CurrentRiskResponse is the ambient risk estimate plus its render color
type CurrentRiskResponse struct {
	DangerPercent float64 `json:"danger_percent"`
	DangerLevel   string  `json:"danger_level"`
	Confidence    float64 `json:"confidence"`
	Quality       string  `json:"quality"`
	Color         string  `json:"color"`
}

// MapMarker is a caller-supplied incident marker. Path, when present,
// designates a line-segment incident instead of a point; its entries may be
// [lat, lng] tuples or {lat, lng} objects.
type MapMarker struct {
	ID       interface{}   `json:"id"`
	Lat      interface{}   `json:"lat"`
	Lng      interface{}   `json:"lng"`
	Severity string        `json:"severity,omitempty"`
	Path     []interface{} `json:"path,omitempty"`
}

// Marker layer modes
const (
	LayerSeverity = "severity"
	LayerAI       = "ai"
)

// OverlayRequest submits the currently visible marker set for rendering;
// in AI-layer mode the markers are batch-scored by the model first.
type OverlayRequest struct {
	Timestamp int64       `json:"timestamp,omitempty"`
	Layer     string      `json:"layer"`
	Markers   []MapMarker `json:"markers"`
}

// MarkerRender is one color/opacity-coded marker or polyline ready to draw
type MarkerRender struct {
	ID            string     `json:"id"`
	Kind          string     `json:"kind"` // "point" or "segment"
	Position      Position   `json:"position"`
	Path          []Position `json:"path,omitempty"`
	Color         string     `json:"color"`
	Opacity       float64    `json:"opacity"`
	Label         string     `json:"label"`
	DangerLevel   string     `json:"danger_level,omitempty"`
	DangerPercent *float64   `json:"danger_percent,omitempty"`
}

// OverlayResponse carries the render models plus how many markers were
// dropped for invalid geometry
type OverlayResponse struct {
	Layer   string         `json:"layer"`
	Markers []MarkerRender `json:"markers"`
	Dropped int            `json:"dropped,omitempty"`
}

// ExplainRequest asks for the model's per-feature explanation of one segment
type ExplainRequest struct {
	SegmentID interface{} `json:"segment_id"`
	Lat       interface{} `json:"lat"`
	Lng       interface{} `json:"lng"`
	Timestamp int64       `json:"timestamp,omitempty"`
}

// ExplainResponse merges the interpreted explanation with the segment's
// cached overlay score, when one is present
type ExplainResponse struct {
	SegmentID      string             `json:"segment_id"`
	ShapPerFeature map[string]float64 `json:"shap_per_feature"`
	Entries        []ExplanationEntry `json:"entries"`
	DangerLevel    string             `json:"danger_level,omitempty"`
	DangerPercent  *float64           `json:"danger_percent,omitempty"`
}
