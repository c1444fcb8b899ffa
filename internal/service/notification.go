package service

import (
	"context"
	"errors"

	"elira-backend/internal/domain"
	"elira-backend/internal/repository"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type notificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	notes, total, err := s.notificationRepo.List(ctx, userID, pageSize, offset)
	if err != nil {
		return nil, 0, status.Errorf(codes.Internal, "failed to list notifications: %v", err)
	}
	return notes, total, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID string, notificationID int32) error {
	err := s.notificationRepo.MarkAsRead(ctx, notificationID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return status.Error(codes.NotFound, "notification not found")
	}
	if err != nil {
		return status.Errorf(codes.Internal, "failed to mark notification read: %v", err)
	}
	return nil
}
