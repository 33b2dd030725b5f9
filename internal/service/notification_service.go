package service

import (
	"context"
	"fmt"

	"github.com/tilmock/cefr-backend/internal/model"
	"github.com/tilmock/cefr-backend/internal/repository"
)

// NotificationService publishes and lists platform-wide notices.
type NotificationService struct {
	notifs *repository.NotificationRepository
}

func NewNotificationService(notifs *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notifs: notifs}
}

func (s *NotificationService) Create(ctx context.Context, req *model.CreateNotificationRequest) (*model.Notification, error) {
	n := &model.Notification{Title: req.Title, Body: req.Body}
	if err := s.notifs.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

// List returns one page of notices, newest first, plus the total count so
// clients can render pagination.
func (s *NotificationService) List(ctx context.Context, page, limit int) ([]model.Notification, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}

	total, err := s.notifs.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	items, err := s.notifs.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return items, total, nil
}
