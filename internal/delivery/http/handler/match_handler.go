package handler

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchTrigger interface {
	DispatchForJob(ctx context.Context, jobID string, requirements *string) error
}

type TriggerMatchRequest struct {
	Requirements *string `json:"requirements"`
}

type TriggerMatchResponse struct {
	JobID string `json:"job_id"`
}

type MatchHandler struct {
	matcher MatchTrigger
}

func NewMatchHandler(m MatchTrigger) *MatchHandler {
	return &MatchHandler{matcher: m}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:job_id/match", h.TriggerMatch)
}

// TriggerMatch starts a matcher run and answers 202 without waiting for it.
// An empty body makes the matcher use the stored job requirements.
func (h *MatchHandler) TriggerMatch(c fiber.Ctx) error {
	// The run outlives the request, so the id must not alias the request buffer.
	jobID := strings.Clone(c.Params("job_id"))

	var req TriggerMatchRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}

	if err := h.matcher.DispatchForJob(c.Context(), jobID, req.Requirements); err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, TriggerMatchResponse{JobID: jobID})
}

func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrNotificationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Notification not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
