package service_test

import (
	"context"
	"testing"

	"elira-backend/internal/repository"
	"elira-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNotificationService_MarkAsRead(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := service.NewNotificationService(repo)

		repo.On("MarkAsRead", ctx, int32(7), "user-1").Return(nil)

		assert.NoError(t, svc.MarkAsRead(ctx, "user-1", 7))
		repo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := service.NewNotificationService(repo)

		repo.On("MarkAsRead", ctx, int32(7), "user-1").Return(repository.ErrNotFound)

		err := svc.MarkAsRead(ctx, "user-1", 7)
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("DatabaseFailure", func(t *testing.T) {
		repo := new(MockNotificationRepo)
		svc := service.NewNotificationService(repo)

		repo.On("MarkAsRead", ctx, int32(7), "user-1").Return(assert.AnError)

		// Infrastructure failures must not masquerade as missing rows.
		err := svc.MarkAsRead(ctx, "user-1", 7)
		assert.Equal(t, codes.Internal, status.Code(err))
	})
}
