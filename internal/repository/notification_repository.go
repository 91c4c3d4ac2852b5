package repository

import (
	"context"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/notification"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationListFilter struct {
	UserID     string
	UnreadOnly bool
	Limit      int
	Offset     int
}

type NotificationRepository interface {
	Insert(ctx context.Context, n notification.Notification) error
	ListByUser(ctx context.Context, f NotificationListFilter) ([]notification.Notification, error)
	// MarkRead flips the read flag of a notification owned by userID.
	MarkRead(ctx context.Context, id string, userID string) error
}

type PostgresNotificationRepository struct {
	db database.DB
}

func NewPostgresNotificationRepository(db database.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Insert(ctx context.Context, n notification.Notification) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO notifications (id, user_id, title, message, type, read, related_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.UserID, n.Title, n.Message, string(n.Type), n.Read, n.RelatedID, n.CreatedAt,
	)
	return err
}

func (r *PostgresNotificationRepository) ListByUser(ctx context.Context, f NotificationListFilter) ([]notification.Notification, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	rows, err := r.db.Query(ctx,
		`SELECT id::text, user_id, title, message, type, read, related_id, created_at
		 FROM notifications
		 WHERE user_id = $1
		   AND ($2 = false OR read = false)
		 ORDER BY created_at DESC
		 LIMIT $3 OFFSET $4`,
		f.UserID, f.UnreadOnly, f.Limit, f.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		var n notification.Notification
		var typ string
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &typ, &n.Read, &n.RelatedID, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Type = notification.Type(typ)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresNotificationRepository) MarkRead(ctx context.Context, id string, userID string) error {
	rowsAffected, err := r.db.Exec(ctx,
		`UPDATE notifications
		 SET read = true
		 WHERE id::text = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
