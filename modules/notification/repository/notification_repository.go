package repository

import (
	"context"

	"github.com/google/uuid"

	"syndic-api/core/database"
	"syndic-api/core/logger"
	"syndic-api/modules/notification/entity"
)

type NotificationRepository struct {
	db database.Database
}

func NewNotificationRepository(db database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// NotificationRepositoryInterface defines the repository contract.
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Notification, error)
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, intervention_id, kind, title, message, data, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	err := r.db.ExecContext(ctx, query,
		notification.UserID, notification.InterventionID, notification.Kind,
		notification.Title, notification.Message, notification.Data, notification.IsRead)
	if err != nil {
		logger.Error("NotificationRepository:Create", err)
		return err
	}

	return nil
}

func (r *NotificationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entity.Notification, error) {
	query := `
		SELECT id, user_id, intervention_id, kind, title, message, data, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var notifications []entity.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID); err != nil {
		logger.Error("NotificationRepository:GetByUserID", err)
		return nil, err
	}

	return notifications, nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`
	if err := r.db.ExecContext(ctx, query, userID); err != nil {
		logger.Error("NotificationRepository:MarkAllAsRead", err)
		return err
	}
	return nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		logger.Error("NotificationRepository:CountUnread", err)
		return 0, err
	}

	return count, nil
}
