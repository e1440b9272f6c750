package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/entity"
)

// NotificationRepository implements port.NotificationRepository
type NotificationRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB, logger *zap.Logger) port.NotificationRepository {
	return &NotificationRepository{db: db, logger: logger}
}

// Create inserts a new notification
func (r *NotificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	query := `INSERT INTO notifications (user_id, message, is_read, created_at) VALUES (?, ?, 0, ?)`

	n.CreatedAt = time.Now()
	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, n.UserID, n.Message, n.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create notification",
			zap.Int64("user_id", n.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to create notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	n.ID = id
	return nil
}

// ListByUserID retrieves a page of the user's notifications, newest first
func (r *NotificationRepository) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list notifications",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// MarkRead flags a notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, id int64) error {
	query := `UPDATE notifications SET is_read = 1 WHERE id = ?`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to mark notification read",
			zap.Int64("id", id),
			zap.Error(err))
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.NotificationRepository = (*NotificationRepository)(nil)
