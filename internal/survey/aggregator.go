package survey

import (
	"fmt"

	"roadrisk/internal/domain"
	"roadrisk/internal/util"
)

// featureDecimals is the rounding applied to every feature vector value so
// that wire serialization stays stable across runs.
const featureDecimals = 4

// ScoreAnswer applies the question's reversal policy to a raw ordinal value.
// No side effects; out-of-range input is clamped to the answer scale.
func ScoreAnswer(q domain.Question, rawValue int) int {
	if rawValue < 0 {
		rawValue = 0
	}
	if rawValue > domain.MaxOptionValue {
		rawValue = domain.MaxOptionValue
	}
	if q.Reversed {
		return domain.MaxOptionValue - rawValue
	}
	return rawValue
}

// NewAnswer builds an immutable Answer for a bank question, computing its
// risk score at creation time.
func NewAnswer(questionID, rawValue int) (domain.Answer, error) {
	q, ok := QuestionByID(questionID)
	if !ok {
		return domain.Answer{}, domain.NewInvalidInputError(fmt.Sprintf("unknown question id: %d", questionID))
	}
	if rawValue < 0 || rawValue > domain.MaxOptionValue {
		return domain.Answer{}, domain.NewInvalidInputError(
			fmt.Sprintf("answer value %d for question %d is out of range [0, %d]", rawValue, questionID, domain.MaxOptionValue))
	}
	return domain.Answer{
		QuestionID: questionID,
		RawValue:   rawValue,
		RiskScore:  ScoreAnswer(q, rawValue),
		Reversed:   q.Reversed,
	}, nil
}

// SectionMean returns the arithmetic mean of risk scores over the answered
// questions of one section. A section with no answers yields 0, not NaN;
// callers must treat that 0 as "no signal" rather than "lowest risk" —
// the separate completion status is the only completeness indicator.
func SectionMean(sectionID string, answers domain.AnswerSet) float64 {
	var sum, n float64
	for _, s := range Sections {
		if s.ID != sectionID {
			continue
		}
		for _, q := range s.Questions {
			if a, ok := answers[q.ID]; ok {
				sum += float64(a.RiskScore)
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / n
}

// BuildFeatureVector reduces an answer set into the classifier's fixed-shape
// input. Every value is the rounded mean of one section — except errors,
// which averages the slips and mistakes section means.
func BuildFeatureVector(answers domain.AnswerSet) domain.FeatureVector {
	fv := make(domain.FeatureVector, len(domain.FeatureNames))
	for _, feature := range domain.FeatureNames {
		sections := sectionFeatures[feature]
		var sum float64
		for _, sectionID := range sections {
			sum += SectionMean(sectionID, answers)
		}
		fv[feature] = util.Round(sum/float64(len(sections)), featureDecimals)
	}
	return fv
}
