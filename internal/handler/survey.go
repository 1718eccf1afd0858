package handler

import (
	"roadrisk/internal/domain"
	"roadrisk/internal/dto"
	"roadrisk/internal/logger"
	"roadrisk/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SurveyHandler handles driver-behavior survey HTTP requests
type SurveyHandler struct {
	service service.SurveyService
}

// NewSurveyHandler creates a new SurveyHandler instance
func NewSurveyHandler(service service.SurveyService) *SurveyHandler {
	return &SurveyHandler{
		service: service,
	}
}

// GetQuestions handles GET /api/survey/questions
func (h *SurveyHandler) GetQuestions(c *fiber.Ctx) error {
	return c.JSON(h.service.Questions())
}

// GetState handles GET /api/survey/state
func (h *SurveyHandler) GetState(c *fiber.Ctx) error {
	driverID := c.Query("driver_id")

	state, err := h.service.State(c.UserContext(), driverID)
	if err != nil {
		logger.Get().Error("Failed to get survey state",
			zap.Error(err),
			zap.String("driver_id", driverID),
		)
		return err
	}
	return c.JSON(state)
}

// Skip handles POST /api/survey/skip
func (h *SurveyHandler) Skip(c *fiber.Ctx) error {
	var req dto.SkipSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	if err := h.service.Skip(c.UserContext(), req.DriverID); err != nil {
		logger.Get().Error("Failed to skip survey",
			zap.Error(err),
			zap.String("driver_id", req.DriverID),
		)
		return err
	}
	return c.JSON(fiber.Map{"status": domain.SurveyStatusSkipped})
}

// Submit handles POST /api/survey/submit
func (h *SurveyHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	result, err := h.service.Submit(c.UserContext(), &req)
	if err != nil {
		logger.Get().Error("Failed to submit survey",
			zap.Error(err),
			zap.String("driver_id", req.DriverID),
			zap.Int("answers", len(req.Answers)),
		)
		return err
	}
	return c.JSON(result)
}
