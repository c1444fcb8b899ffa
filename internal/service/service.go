package service

import (
	"context"

	"elira-backend/internal/domain"
)

// Services signal failures with google.golang.org/grpc/status errors using
// the codes {Unauthenticated, InvalidArgument, PermissionDenied, NotFound,
// AlreadyExists, Internal}; the HTTP layer maps them to responses.

type PurchaseService interface {
	// PurchaseMasterclass buys a masterclass on behalf of an organization
	// and enrolls every active member. Returns the number of members newly
	// granted access.
	PurchaseMasterclass(ctx context.Context, callerID, orgID, masterclassID, paymentIntentID string) (int32, error)
	// ListPurchases returns the organization's purchase ledger, newest
	// first. Any admin or member of the organization may read it.
	ListPurchases(ctx context.Context, callerID, orgID string) ([]domain.Purchase, error)
}

type CatalogService interface {
	ListMasterclasses(ctx context.Context) ([]domain.Masterclass, error)
	GetMasterclass(ctx context.Context, id string) (*domain.Masterclass, error)
}

type ProgressService interface {
	ListMyProgress(ctx context.Context, userID string) ([]domain.Progress, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID string, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID string, notificationID int32) error
}

type AuthService interface {
	// Login verifies email/password and issues an access token. Only
	// available with the jwt auth provider; production uses Firebase.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type EmailService interface {
	SendPurchaseConfirmation(ctx context.Context, toEmail, toName, orgName, masterclassTitle string, priceCents, enrolledCount int32) error
}
