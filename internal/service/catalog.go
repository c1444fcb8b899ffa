package service

import (
	"context"
	"errors"

	"elira-backend/internal/domain"
	"elira-backend/internal/repository"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type catalogService struct {
	masterclassRepo repository.MasterclassRepository
}

func NewCatalogService(masterclassRepo repository.MasterclassRepository) CatalogService {
	return &catalogService{masterclassRepo: masterclassRepo}
}

func (s *catalogService) ListMasterclasses(ctx context.Context) ([]domain.Masterclass, error) {
	classes, err := s.masterclassRepo.List(ctx)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to list masterclasses: %v", err)
	}
	return classes, nil
}

func (s *catalogService) GetMasterclass(ctx context.Context, id string) (*domain.Masterclass, error) {
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "masterclass id is required")
	}
	masterclass, err := s.masterclassRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, status.Error(codes.NotFound, "masterclass not found")
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to load masterclass: %v", err)
	}
	return masterclass, nil
}
