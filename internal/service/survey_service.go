package service

import (
	"context"
	"errors"
	"time"

	"roadrisk/internal/domain"
	"roadrisk/internal/dto"
	"roadrisk/internal/explain"
	"roadrisk/internal/flow"
	"roadrisk/internal/logger"
	"roadrisk/internal/presentation"
	"roadrisk/internal/survey"
	"roadrisk/internal/util"
	"roadrisk/internal/validation"

	"go.uber.org/zap"
)

// SurveyService defines the interface for driver-behavior survey operations
type SurveyService interface {
	Questions() *dto.QuestionBankResponse
	State(ctx context.Context, driverID string) (*dto.SurveyStateResponse, error)
	Skip(ctx context.Context, driverID string) error
	Submit(ctx context.Context, req *dto.SubmitSurveyRequest) (*dto.SubmitSurveyResponse, error)
}

// surveyService implements SurveyService
type surveyService struct {
	client    domain.InferenceClient
	store     domain.SnapshotStore
	validator *validation.Validator
	submit    *flow.Machine[*dto.SubmitSurveyResponse]
}

// NewSurveyService creates a new instance of surveyService
func NewSurveyService(client domain.InferenceClient, store domain.SnapshotStore) SurveyService {
	return &surveyService{
		client:    client,
		store:     store,
		validator: validation.NewValidator(),
		submit:    flow.NewMachine[*dto.SubmitSurveyResponse](),
	}
}

// Questions implements SurveyService. The bank is immutable; the response
// is rebuilt per call so handlers can never mutate shared state.
func (s *surveyService) Questions() *dto.QuestionBankResponse {
	sections := make([]dto.SectionResponse, 0, len(survey.Sections))
	for _, section := range survey.Sections {
		questions := make([]dto.QuestionResponse, 0, len(section.Questions))
		for _, q := range section.Questions {
			questions = append(questions, dto.QuestionResponse{
				ID:       q.ID,
				Text:     q.Text,
				Reversed: q.Reversed,
			})
		}
		sections = append(sections, dto.SectionResponse{
			ID:        section.ID,
			Title:     section.Title,
			Questions: questions,
		})
	}
	options := make([]dto.OptionResponse, 0, len(survey.AnswerOptions))
	for _, o := range survey.AnswerOptions {
		options = append(options, dto.OptionResponse{Value: o.Value, Label: o.Label})
	}
	return &dto.QuestionBankResponse{Sections: sections, Options: options}
}

// State implements SurveyService. The completion flag decides whether the
// UI auto-shows the survey; the snapshot is attached when one exists but
// its absence is not an error.
func (s *surveyService) State(ctx context.Context, driverID string) (*dto.SurveyStateResponse, error) {
	if errs := s.validator.ValidateDriverID(driverID); len(errs) > 0 {
		return nil, errs
	}

	status, err := s.store.Status(ctx, driverID)
	if err != nil {
		return nil, err
	}

	resp := &dto.SurveyStateResponse{
		Status:    status,
		Completed: status != "",
	}

	snapshot, err := s.store.Load(ctx, driverID)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == domain.CodeSnapshotNotFound {
			return resp, nil
		}
		return nil, err
	}
	resp.Snapshot = &dto.SnapshotResponse{
		ID:                 snapshot.ID,
		Prediction:         snapshot.Prediction,
		RiskPercent:        snapshot.RiskPercent,
		ClassProbabilities: snapshot.ClassProbabilities,
		XAI:                snapshot.XAI,
		Advice:             snapshot.Advice,
		Timestamp:          snapshot.Timestamp,
	}
	return resp, nil
}

// Skip implements SurveyService. It records the skipped flag only; no
// snapshot is written.
func (s *surveyService) Skip(ctx context.Context, driverID string) error {
	if errs := s.validator.ValidateDriverID(driverID); len(errs) > 0 {
		return errs
	}
	return s.store.SetStatus(ctx, driverID, domain.SurveyStatusSkipped)
}

// Submit implements SurveyService: aggregate answers into the feature
// vector, score it remotely, interpret the explanation and persist the
// snapshot. A newer submission supersedes an in-flight one; a superseded
// response still answers its own request but never touches shared state.
func (s *surveyService) Submit(ctx context.Context, req *dto.SubmitSurveyRequest) (*dto.SubmitSurveyResponse, error) {
	if errs := s.validator.ValidateSubmitSurveyRequest(req); len(errs) > 0 {
		return nil, errs
	}

	answers := make(domain.AnswerSet, len(req.Answers))
	for _, sub := range req.Answers {
		answer, err := survey.NewAnswer(sub.QuestionID, sub.Value)
		if err != nil {
			return nil, err
		}
		answers[answer.QuestionID] = answer
	}

	features := survey.BuildFeatureVector(answers)

	token := s.submit.Begin(ctx)
	prediction, err := s.client.Predict(token.Context(), features)
	if err != nil {
		s.submit.Complete(token, nil, err)
		return nil, domain.NewModelUnavailableError("Could not get model prediction", err)
	}

	// A response without a risk label degrades to a "no result" view
	// instead of failing the request.
	if prediction.RiskLabel == "" {
		resp := &dto.SubmitSurveyResponse{HasResult: false}
		s.submit.Complete(token, resp, nil)
		return resp, nil
	}

	tier := presentation.QuizTier(prediction.RiskPercent)
	resp := &dto.SubmitSurveyResponse{
		HasResult:          true,
		RiskLabel:          prediction.RiskLabel,
		RiskPercent:        prediction.RiskPercent,
		Tier:               &dto.TierResponse{Label: tier.Label, Color: tier.Color, Emoji: tier.Emoji},
		Advice:             prediction.AdviceText,
		ClassProbabilities: prediction.ClassProbabilities,
	}

	var shap map[string]float64
	if prediction.XAI != nil {
		shap = prediction.XAI.ShapPerFeature
		resp.Explanations = toExplanationEntries(explain.Interpret(shap))
	}

	snapshot := &domain.Snapshot{
		ID:                 util.NewULID(),
		DriverID:           req.DriverID,
		Answers:            answerList(answers),
		FeatureScores:      features,
		Prediction:         prediction.RiskLabel,
		RiskPercent:        prediction.RiskPercent,
		ClassProbabilities: prediction.ClassProbabilities,
		XAI:                shap,
		Advice:             prediction.AdviceText,
		Timestamp:          time.Now().UTC(),
	}
	resp.SnapshotID = snapshot.ID

	// Persistence failures do not fail the submission; the result was
	// already computed and the user can retake the survey later.
	if err := s.store.Save(ctx, snapshot); err != nil {
		logger.Get().Error("SurveyService: failed to persist snapshot",
			zap.Error(err),
			zap.String("driverID", req.DriverID))
	} else if err := s.store.SetStatus(ctx, req.DriverID, domain.SurveyStatusCompleted); err != nil {
		logger.Get().Error("SurveyService: failed to persist completion status",
			zap.Error(err),
			zap.String("driverID", req.DriverID))
	}

	if !s.submit.Complete(token, resp, nil) {
		logger.Get().Debug("SurveyService: discarded superseded submission result",
			zap.String("driverID", req.DriverID))
	}
	return resp, nil
}

func answerList(answers domain.AnswerSet) []domain.Answer {
	list := make([]domain.Answer, 0, len(answers))
	for _, a := range answers {
		list = append(list, a)
	}
	return list
}

func toExplanationEntries(entries []explain.Entry) []dto.ExplanationEntry {
	out := make([]dto.ExplanationEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ExplanationEntry{
			Feature:            e.Feature,
			Value:              e.Value,
			Direction:          string(e.Direction),
			PercentOfMagnitude: e.PercentOfMagnitude,
			DisplayText:        e.DisplayText,
		})
	}
	return out
}
