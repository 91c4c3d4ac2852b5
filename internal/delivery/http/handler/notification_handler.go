package handler

import (
	"strconv"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/notification"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NotificationListResponse struct {
	Items []notification.Notification `json:"items"`
	Count int                         `json:"count"`
}

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("", h.List)
	r.Patch("/:id/read", h.MarkRead)
}

func (h *NotificationHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.ActingUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	params := usecase.ListNotificationsParams{}
	var err error
	if params.Limit, err = intQuery(c, "limit"); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid limit", nil, err)
	}
	if params.Offset, err = intQuery(c, "offset"); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid offset", nil, err)
	}
	if raw := c.Query("unread"); raw != "" {
		if params.UnreadOnly, err = strconv.ParseBool(raw); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid unread", nil, err)
		}
	}

	items, err := h.uc.List(c.Context(), userID, params)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, NotificationListResponse{Items: items, Count: len(items)})
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	userID, ok := middleware.ActingUserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	if err := h.uc.MarkRead(c.Context(), userID, c.Params("id")); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func intQuery(c fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
