package service

import (
	"context"

	"elira-backend/internal/domain"
	"elira-backend/internal/repository"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type progressService struct {
	progressRepo repository.ProgressRepository
}

func NewProgressService(progressRepo repository.ProgressRepository) ProgressService {
	return &progressService{progressRepo: progressRepo}
}

func (s *progressService) ListMyProgress(ctx context.Context, userID string) ([]domain.Progress, error) {
	if userID == "" {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	records, err := s.progressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to list progress: %v", err)
	}
	return records, nil
}
