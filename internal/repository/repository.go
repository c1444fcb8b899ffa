package repository

import (
	"context"
	"errors"

	"elira-backend/internal/domain"
)

var (
	// ErrNotFound is returned by Get methods when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyPurchased is returned by ExecutePurchase when the
	// organization already owns the masterclass.
	ErrAlreadyPurchased = errors.New("masterclass already purchased")
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type OrganizationRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	GetAdmin(ctx context.Context, orgID, userID string) (*domain.OrgAdmin, error)
}

// MemberRepository reads member seats outside the purchase path; the
// fan-out itself locks and reads seats inside its own transaction.
type MemberRepository interface {
	GetByBoundUser(ctx context.Context, orgID, userID string) (*domain.Member, error)
}

type MasterclassRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Masterclass, error)
	List(ctx context.Context) ([]domain.Masterclass, error)
}

type ProgressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Progress, error)
}

// PurchaseRequest carries everything the transactional fan-out needs:
// identifiers plus the catalog snapshot taken by the coordinator.
type PurchaseRequest struct {
	EventID          string
	OrgID            string
	MasterclassID    string
	MasterclassTitle string
	PriceCents       int32
	PurchasedBy      string
	PaymentIntentID  string
}

type PurchaseRepository interface {
	// ExecutePurchase runs the whole entitlement grant as one transaction:
	// it locks the organization row, rejects duplicates, appends the
	// masterclass to the organization's purchased set, grants it to every
	// active member that lacks it, creates progress records for members
	// with bound identities, and writes the outbox event. Returns the
	// number of members newly enrolled.
	ExecutePurchase(ctx context.Context, req *PurchaseRequest) (int32, error)
	CreateLedgerEntry(ctx context.Context, p *domain.Purchase) error
	ListByOrg(ctx context.Context, orgID string) ([]domain.Purchase, error)
}

type PurchaseEventRepository interface {
	ListPending(ctx context.Context, limit int32) ([]domain.PurchaseEvent, error)
	MarkDispatched(ctx context.Context, id string) error
	RecordAttempt(ctx context.Context, id string) error
	PurgeDispatchedBefore(ctx context.Context, days int32) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID string, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id int32, userID string) error
}
