package domain

// MaxOptionValue is the highest ordinal answer value on the survey scale.
// Answers run 0 ("Never") through 5 ("Always").
const MaxOptionValue = 5

// Feature names of the classifier's fixed-shape input vector.
const (
	FeatureDissociative      = "dissociative"
	FeatureAnxious           = "anxious"
	FeatureRisky             = "risky"
	FeatureAngry             = "angry"
	FeatureHighVelocity      = "high_velocity"
	FeatureDistressReduction = "distress_reduction"
	FeaturePatient           = "patient"
	FeatureCareful           = "careful"
	FeatureErrors            = "errors"
	FeatureViolations        = "violations"
	FeatureLapses            = "lapses"
)

// FeatureNames lists every feature the remote classifier expects, in a
// stable order for serialization and iteration.
var FeatureNames = []string{
	FeatureDissociative,
	FeatureAnxious,
	FeatureRisky,
	FeatureAngry,
	FeatureHighVelocity,
	FeatureDistressReduction,
	FeaturePatient,
	FeatureCareful,
	FeatureErrors,
	FeatureViolations,
	FeatureLapses,
}

// Question is a single survey item. Questions are immutable and defined at
// load time; each belongs to exactly one Section.
type Question struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Reversed bool   `json:"reversed"`
}

// Section groups questions under one behavioural scale. Section order is
// significant for traversal but not for scoring.
type Section struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Answer records one selected option. RiskScore applies the question's
// reversal policy; both values are fixed once the answer is created.
type Answer struct {
	QuestionID int  `json:"question_id"`
	RawValue   int  `json:"raw_value"`
	RiskScore  int  `json:"risk_score"`
	Reversed   bool `json:"reversed"`
}

// AnswerSet keys answers by question ID; at most one answer per question.
type AnswerSet map[int]Answer

// FeatureVector maps feature names to per-category mean scores in [0, 5].
// Values are always derived from section means, never raw survey input.
type FeatureVector map[string]float64
