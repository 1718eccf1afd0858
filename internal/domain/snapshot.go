package domain

import (
	"context"
	"time"
)

// Survey completion statuses stored under the per-driver status key.
// The status is written independently of the snapshot itself: skipping the
// survey records a status without ever producing a snapshot.
const (
	SurveyStatusCompleted = "completed"
	SurveyStatusSkipped   = "skipped"
)

// Snapshot is the one persisted record per completed survey. It is written
// once on successful submission and read back at the next survey mount.
type Snapshot struct {
	ID                 string             `json:"id"`
	DriverID           string             `json:"driver_id"`
	Answers            []Answer           `json:"answers"`
	FeatureScores      FeatureVector      `json:"feature_scores"`
	Prediction         string             `json:"prediction"`
	RiskPercent        float64            `json:"risk_percent"`
	ClassProbabilities map[string]float64 `json:"class_probabilities,omitempty"`
	XAI                map[string]float64 `json:"xai,omitempty"`
	Advice             string             `json:"advice,omitempty"`
	Timestamp          time.Time          `json:"timestamp"`
}

// SnapshotStore defines the interface (port) for survey snapshot persistence.
type SnapshotStore interface {
	// Save stores a snapshot under the driver's fixed snapshot key,
	// replacing any previous record.
	Save(ctx context.Context, snapshot *Snapshot) error

	// Load returns the stored snapshot, or a SNAPSHOT_NOT_FOUND domain
	// error when none exists.
	Load(ctx context.Context, driverID string) (*Snapshot, error)

	// Status returns the stored completion status, or "" when unset.
	Status(ctx context.Context, driverID string) (string, error)

	// SetStatus records the completion status independently of the snapshot.
	SetStatus(ctx context.Context, driverID, status string) error
}
