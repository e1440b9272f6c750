package service

import (
	"context"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/entity"
)

// NotificationService exposes the in-app notification feed
type NotificationService interface {
	List(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, id int64) error
}

type notificationServiceImpl struct {
	notificationRepo port.NotificationRepository
	logger           Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo port.NotificationRepository, logger Logger) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// List retrieves a page of the user's notifications, newest first
func (s *notificationServiceImpl) List(ctx context.Context, userID int64, limit, offset int) ([]*entity.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	notifications, err := s.notificationRepo.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error("Failed to list notifications", "error", err, "user_id", userID)
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags a notification as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, id int64) error {
	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		s.logger.Error("Failed to mark notification read", "error", err, "notification_id", id)
		return err
	}
	return nil
}
