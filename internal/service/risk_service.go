package service

import (
	"context"
	"time"

	"roadrisk/internal/domain"
	"roadrisk/internal/dto"
	"roadrisk/internal/flow"
	"roadrisk/internal/geo"
	"roadrisk/internal/logger"
	"roadrisk/internal/presentation"

	"go.uber.org/zap"
)

// RiskService defines the interface for ambient point-in-time risk lookups
type RiskService interface {
	CurrentRisk(ctx context.Context, req *dto.CurrentRiskRequest) (*dto.CurrentRiskResponse, error)
}

// riskService implements RiskService
type riskService struct {
	client  domain.InferenceClient
	current *flow.Machine[*dto.CurrentRiskResponse]
}

// NewRiskService creates a new instance of riskService
func NewRiskService(client domain.InferenceClient) RiskService {
	return &riskService{
		client:  client,
		current: flow.NewMachine[*dto.CurrentRiskResponse](),
	}
}

// requestTime converts an epoch-millisecond request timestamp, defaulting
// to now when the caller sent none.
func requestTime(ms int64) time.Time {
	if ms <= 0 {
		return time.Now().UTC()
	}
	return time.UnixMilli(ms).UTC()
}

// CurrentRisk implements RiskService. A position change supersedes the
// in-flight request so a slow response for the old position can never
// overwrite the newer one.
func (s *riskService) CurrentRisk(ctx context.Context, req *dto.CurrentRiskRequest) (*dto.CurrentRiskResponse, error) {
	pos, ok := geo.NormalizePosition(req.Lat, req.Lng)
	if !ok {
		return nil, domain.NewInvalidInputError("lat and lng must be finite coordinates")
	}

	token := s.current.Begin(ctx)
	risk, err := s.client.CurrentRisk(token.Context(), pos.Lat, pos.Lng, requestTime(req.Timestamp))
	if err != nil {
		s.current.Complete(token, nil, err)
		return nil, domain.NewModelUnavailableError("Failed to load current risk", err)
	}

	resp := &dto.CurrentRiskResponse{
		DangerPercent: risk.DangerPercent,
		DangerLevel:   risk.DangerLevel,
		Confidence:    risk.Confidence,
		Quality:       risk.Quality,
		Color:         presentation.DangerLevelColor(risk.DangerLevel),
	}
	if !s.current.Complete(token, resp, nil) {
		logger.Get().Debug("RiskService: discarded superseded current-risk result",
			zap.Float64("lat", pos.Lat),
			zap.Float64("lng", pos.Lng))
	}
	return resp, nil
}
