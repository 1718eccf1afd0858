package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Prediction is the classifier's response to a survey feature vector.
// Read-only once received.
type Prediction struct {
	RiskLabel          string             `json:"risk_label"`
	RiskPercent        float64            `json:"risk_percent"`
	ClassProbabilities map[string]float64 `json:"class_probabilities,omitempty"`
	AdviceText         string             `json:"advice_text,omitempty"`
	XAI                *Explanation       `json:"xai,omitempty"`
}

// Explanation carries signed per-feature SHAP contributions. The sign
// indicates push toward vs away from the predicted class.
type Explanation struct {
	ShapPerFeature map[string]float64 `json:"shap_per_feature"`
}

// PointRisk is the ambient risk estimate for a single coordinate at a
// point in time.
type PointRisk struct {
	DangerPercent float64 `json:"danger_percent"`
	DangerLevel   string  `json:"danger_level"`
	Confidence    float64 `json:"confidence"`
	Quality       string  `json:"quality"`
}

// OverlayEntry is one scored road segment from a batch overlay response.
// SegmentID may arrive as a JSON number or string; use SegmentKey to
// canonicalize it before keying anything on it.
type OverlayEntry struct {
	SegmentID     interface{} `json:"segment_id"`
	DangerLevel   string      `json:"danger_level"`
	DangerPercent float64     `json:"danger_percent"`
}

// OverlayRow is one marker position submitted for batch segment scoring.
type OverlayRow struct {
	SegmentID string  `json:"segment_id"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// SegmentKey canonicalizes a segment identifier to its string form.
// Segment ids arrive as both numbers and strings across call sites; every
// cache write and lookup must go through this single conversion so the two
// paths can never disagree.
func SegmentKey(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
