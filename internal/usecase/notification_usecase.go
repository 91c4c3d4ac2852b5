package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobboard/internal/domain/notification"
	"jobboard/internal/repository"
)

type ListNotificationsParams struct {
	Limit      int
	Offset     int
	UnreadOnly bool
}

// NotificationUsecase serves the recipient-facing read side. Every call takes
// the acting user id explicitly.
type NotificationUsecase interface {
	List(ctx context.Context, actingUserID string, p ListNotificationsParams) ([]notification.Notification, error)
	MarkRead(ctx context.Context, actingUserID, notificationID string) error
}

type notificationUsecase struct {
	repo repository.NotificationRepository
}

func NewNotificationUsecase(repo repository.NotificationRepository) NotificationUsecase {
	return &notificationUsecase{repo: repo}
}

func (u *notificationUsecase) List(ctx context.Context, actingUserID string, p ListNotificationsParams) ([]notification.Notification, error) {
	if strings.TrimSpace(actingUserID) == "" {
		return nil, ErrUnauthorized
	}
	if p.Limit < 0 || p.Offset < 0 {
		return nil, fmt.Errorf("%w: limit and offset must not be negative", ErrInvalidInput)
	}
	if p.Limit > 100 {
		p.Limit = 100
	}

	items, err := u.repo.ListByUser(ctx, repository.NotificationListFilter{
		UserID:     actingUserID,
		UnreadOnly: p.UnreadOnly,
		Limit:      p.Limit,
		Offset:     p.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return items, nil
}

// MarkRead only touches notifications owned by actingUserID; anything else
// is reported as not found.
func (u *notificationUsecase) MarkRead(ctx context.Context, actingUserID, notificationID string) error {
	if strings.TrimSpace(actingUserID) == "" {
		return ErrUnauthorized
	}
	if strings.TrimSpace(notificationID) == "" {
		return fmt.Errorf("%w: notification id is required", ErrInvalidInput)
	}

	if err := u.repo.MarkRead(ctx, notificationID, actingUserID); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return nil
}
