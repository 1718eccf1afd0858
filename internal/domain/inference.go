package domain

import (
	"context"
	"time"
)

// InferenceClient defines the interface (port) for the remote scoring
// service. Implementations are adapters (e.g. the HTTP client in
// internal/adapter/inference). Each method is a single request/response
// cycle with no retry; callers own cancellation through ctx.
type InferenceClient interface {
	// Predict scores a completed survey feature vector.
	Predict(ctx context.Context, features FeatureVector) (*Prediction, error)

	// CurrentRisk estimates ambient risk at a coordinate for a point in time.
	CurrentRisk(ctx context.Context, lat, lng float64, timestamp time.Time) (*PointRisk, error)

	// Overlay scores a batch of road segments in one call.
	Overlay(ctx context.Context, timestamp time.Time, rows []OverlayRow) ([]OverlayEntry, error)

	// Explain returns per-feature SHAP contributions for one segment.
	Explain(ctx context.Context, segmentID string, lat, lng float64, timestamp time.Time) (*Explanation, error)
}
