package handler

import (
	"encoding/json"

	"jobboard/internal/domain/event"
	applog "jobboard/internal/pkg/logger"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

const IntakePath = "/generate-notifications"

// EventIntakeHandler exposes the Notifier over HTTP. It renders its own
// {"success"} / {"error"} body instead of the semantic envelope.
type EventIntakeHandler struct {
	notifier usecase.Notifier
	logger   *zap.Logger
}

func NewEventIntakeHandler(n usecase.Notifier, logger *zap.Logger) *EventIntakeHandler {
	return &EventIntakeHandler{notifier: n, logger: applog.OrNop(logger)}
}

func (h *EventIntakeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Options(IntakePath, h.Preflight)
	r.Post(IntakePath, h.Handle)
}

func (h *EventIntakeHandler) Preflight(c fiber.Ctx) error {
	c.Status(fiber.StatusOK)
	return nil
}

// Handle answers 400 only when the body is not JSON. Every failure of the
// Notifier, missing ids included, is a 500 carrying the error text.
func (h *EventIntakeHandler) Handle(c fiber.Ctx) error {
	var ev event.Event
	if err := json.Unmarshal(c.Body(), &ev); err != nil {
		h.logger.Warn("intake body rejected",
			zap.String("body", applog.Truncate(string(c.Body()), 200)),
			zap.Error(err),
		)
		return response.IntakeError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.notifier.HandleEvent(c.Context(), ev); err != nil {
		h.logger.Error("notification event failed",
			zap.String("action", string(ev.Action)),
			zap.Error(err),
		)
		return response.IntakeError(c, fiber.StatusInternalServerError, err.Error())
	}

	return response.IntakeOK(c)
}
