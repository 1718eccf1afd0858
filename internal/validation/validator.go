package validation

import (
	"fmt"
	"strings"

	"roadrisk/internal/domain"
	"roadrisk/internal/dto"
	"roadrisk/internal/survey"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateDriverID validates the driver identifier parameter
func (v *Validator) ValidateDriverID(driverID string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(driverID) == "" {
		errs = append(errs, domain.NewMissingFieldError("driver_id"))
	}
	return errs
}

// ValidateSubmitSurveyRequest validates a survey submission: the driver id,
// that every answer references a bank question exactly once, and that every
// value sits on the answer scale.
func (v *Validator) ValidateSubmitSurveyRequest(req *dto.SubmitSurveyRequest) domain.ValidationErrors {
	errs := v.ValidateDriverID(req.DriverID)

	if len(req.Answers) == 0 {
		errs = append(errs, domain.NewMissingFieldError("answers"))
		return errs
	}

	seen := make(map[int]struct{}, len(req.Answers))
	for _, a := range req.Answers {
		field := fmt.Sprintf("answers[%d]", a.QuestionID)
		if _, ok := survey.QuestionByID(a.QuestionID); !ok {
			errs = append(errs, domain.NewInvalidFormatError(field, fmt.Sprintf("unknown question id %d", a.QuestionID)))
			continue
		}
		if _, dup := seen[a.QuestionID]; dup {
			errs = append(errs, domain.NewInvalidFormatError(field, "duplicate answer for question"))
			continue
		}
		seen[a.QuestionID] = struct{}{}
		if a.Value < 0 || a.Value > domain.MaxOptionValue {
			errs = append(errs, domain.NewOutOfRangeError(field, a.Value, 0, domain.MaxOptionValue))
		}
	}

	return errs
}
