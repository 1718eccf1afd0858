package handler

import (
	"roadrisk/internal/domain"
	"roadrisk/internal/dto"
	"roadrisk/internal/logger"
	"roadrisk/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RiskHandler handles map risk HTTP requests: ambient point risk, the
// batch overlay, and per-segment explanations.
type RiskHandler struct {
	risk    service.RiskService
	overlay service.OverlayService
}

// NewRiskHandler creates a new RiskHandler instance
func NewRiskHandler(risk service.RiskService, overlay service.OverlayService) *RiskHandler {
	return &RiskHandler{
		risk:    risk,
		overlay: overlay,
	}
}

// CurrentRisk handles POST /api/risk/current
func (h *RiskHandler) CurrentRisk(c *fiber.Ctx) error {
	var req dto.CurrentRiskRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	result, err := h.risk.CurrentRisk(c.UserContext(), &req)
	if err != nil {
		logger.Get().Error("Failed to get current risk", zap.Error(err))
		return err
	}
	return c.JSON(result)
}

// Overlay handles POST /api/risk/overlay
func (h *RiskHandler) Overlay(c *fiber.Ctx) error {
	var req dto.OverlayRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	result, err := h.overlay.Refresh(c.UserContext(), &req)
	if err != nil {
		logger.Get().Error("Failed to refresh overlay",
			zap.Error(err),
			zap.String("layer", req.Layer),
			zap.Int("markers", len(req.Markers)),
		)
		return err
	}
	return c.JSON(result)
}

// Explain handles POST /api/risk/explain
func (h *RiskHandler) Explain(c *fiber.Ctx) error {
	var req dto.ExplainRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	result, err := h.overlay.Explain(c.UserContext(), &req)
	if err != nil {
		logger.Get().Error("Failed to explain segment",
			zap.Error(err),
			zap.Any("segment_id", req.SegmentID),
		)
		return err
	}
	return c.JSON(result)
}
