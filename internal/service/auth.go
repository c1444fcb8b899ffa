package service

import (
	"context"
	"errors"

	"elira-backend/internal/domain"
	"elira-backend/internal/logger"
	"elira-backend/internal/repository"
	"elira-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type authService struct {
	userRepo     repository.UserRepository
	tokenManager security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokenManager security.TokenManager) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	logger.EnterMethod("authService.Login", "email", email)

	if email == "" || password == "" {
		return "", nil, status.Error(codes.InvalidArgument, "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, status.Error(codes.Unauthenticated, "invalid email or password")
	}
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "email", email)
		return "", nil, status.Errorf(codes.Internal, "failed to load user: %v", err)
	}

	if user.PasswordHash == "" {
		// Account provisioned through Firebase; has no local password.
		return "", nil, status.Error(codes.Unauthenticated, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, status.Error(codes.Unauthenticated, "invalid email or password")
	}

	token, err := s.tokenManager.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		logger.ExitMethodWithError("authService.Login", err, "email", email)
		return "", nil, status.Errorf(codes.Internal, "failed to issue token: %v", err)
	}

	logger.ExitMethod("authService.Login", "userID", user.ID)
	return token, user, nil
}
