package dto

import "time"

// QuestionResponse represents one survey question in the API response
type QuestionResponse struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Reversed bool   `json:"reversed"`
}

// SectionResponse represents one ordered survey section
type SectionResponse struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Questions []QuestionResponse `json:"questions"`
}

// OptionResponse is one point of the ordinal answer scale
type OptionResponse struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// QuestionBankResponse is the full survey definition served to the UI
type QuestionBankResponse struct {
	Sections []SectionResponse `json:"sections"`
	Options  []OptionResponse  `json:"options"`
}

// AnswerSubmission is one selected option in a survey submission
type AnswerSubmission struct {
	QuestionID int `json:"question_id"`
	Value      int `json:"value"`
}

// SubmitSurveyRequest is the request body for survey submission
type SubmitSurveyRequest struct {
	DriverID string             `json:"driver_id"`
	Answers  []AnswerSubmission `json:"answers"`
}

// TierResponse is the discrete presentation tier for a risk percent
type TierResponse struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Emoji string `json:"emoji"`
}

// ExplanationEntry is one interpreted per-feature contribution
type ExplanationEntry struct {
	Feature            string  `json:"feature"`
	Value              float64 `json:"value"`
	Direction          string  `json:"direction"`
	PercentOfMagnitude *int    `json:"percent_of_magnitude,omitempty"`
	DisplayText        string  `json:"display_text"`
}

// SubmitSurveyResponse is the survey result view. HasResult is false when
// the model answered without a usable risk label; the UI renders a
// "no result" state instead of a tier.
type SubmitSurveyResponse struct {
	HasResult          bool               `json:"has_result"`
	RiskLabel          string             `json:"risk_label,omitempty"`
	RiskPercent        float64            `json:"risk_percent,omitempty"`
	Tier               *TierResponse      `json:"tier,omitempty"`
	Advice             string             `json:"advice,omitempty"`
	ClassProbabilities map[string]float64 `json:"class_probabilities,omitempty"`
	Explanations       []ExplanationEntry `json:"explanations,omitempty"`
	SnapshotID         string             `json:"snapshot_id,omitempty"`
}

// SkipSurveyRequest marks the survey as skipped for a driver
type SkipSurveyRequest struct {
	DriverID string `json:"driver_id"`
}

// SnapshotResponse is the persisted survey result returned at survey mount
type SnapshotResponse struct {
	ID                 string             `json:"id"`
	Prediction         string             `json:"prediction"`
	RiskPercent        float64            `json:"risk_percent"`
	ClassProbabilities map[string]float64 `json:"class_probabilities,omitempty"`
	XAI                map[string]float64 `json:"xai,omitempty"`
	Advice             string             `json:"advice,omitempty"`
	Timestamp          time.Time          `json:"timestamp"`
}

// SurveyStateResponse tells the UI whether to auto-show the survey.
// Completed reflects the status flag alone, independent of whether a
// snapshot exists.
type SurveyStateResponse struct {
	Status    string            `json:"status,omitempty"`
	Completed bool              `json:"completed"`
	Snapshot  *SnapshotResponse `json:"snapshot,omitempty"`
}
