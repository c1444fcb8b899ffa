package service

import (
	"context"
	"errors"

	"elira-backend/internal/domain"
	"elira-backend/internal/logger"
	"elira-backend/internal/repository"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type purchaseService struct {
	purchaseRepo    repository.PurchaseRepository
	orgRepo         repository.OrganizationRepository
	memberRepo      repository.MemberRepository
	masterclassRepo repository.MasterclassRepository
}

func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	orgRepo repository.OrganizationRepository,
	memberRepo repository.MemberRepository,
	masterclassRepo repository.MasterclassRepository,
) PurchaseService {
	return &purchaseService{
		purchaseRepo:    purchaseRepo,
		orgRepo:         orgRepo,
		memberRepo:      memberRepo,
		masterclassRepo: masterclassRepo,
	}
}

// PurchaseMasterclass runs the validation chain in a fixed order, each step
// with its own error code, then hands the fan-out to a single database
// transaction. The billing-authority check runs before any catalog or
// organization read so non-billing admins never learn whether the product
// exists.
func (s *purchaseService) PurchaseMasterclass(ctx context.Context, callerID, orgID, masterclassID, paymentIntentID string) (int32, error) {
	logger.EnterMethod("purchaseService.PurchaseMasterclass", "callerID", callerID, "orgID", orgID, "masterclassID", masterclassID)

	if callerID == "" {
		return 0, status.Error(codes.Unauthenticated, "authentication required")
	}
	if orgID == "" || masterclassID == "" {
		return 0, status.Error(codes.InvalidArgument, "organization id and masterclass id are required")
	}

	admin, err := s.orgRepo.GetAdmin(ctx, orgID, callerID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, status.Error(codes.PermissionDenied, "caller is not an administrator of this organization")
	}
	if err != nil {
		logger.ExitMethodWithError("purchaseService.PurchaseMasterclass", err, "orgID", orgID)
		return 0, status.Errorf(codes.Internal, "failed to check administrator: %v", err)
	}
	if !admin.CanPurchase() {
		return 0, status.Error(codes.PermissionDenied, "billing permission required to purchase masterclasses")
	}

	masterclass, err := s.masterclassRepo.GetByID(ctx, masterclassID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, status.Error(codes.NotFound, "masterclass not found")
	}
	if err != nil {
		logger.ExitMethodWithError("purchaseService.PurchaseMasterclass", err, "masterclassID", masterclassID)
		return 0, status.Errorf(codes.Internal, "failed to load masterclass: %v", err)
	}

	enrolledCount, err := s.purchaseRepo.ExecutePurchase(ctx, &repository.PurchaseRequest{
		EventID:          uuid.NewString(),
		OrgID:            orgID,
		MasterclassID:    masterclassID,
		MasterclassTitle: masterclass.Title,
		PriceCents:       masterclass.PriceCents,
		PurchasedBy:      callerID,
		PaymentIntentID:  paymentIntentID,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return 0, status.Error(codes.NotFound, "organization not found")
	}
	if errors.Is(err, repository.ErrAlreadyPurchased) {
		return 0, status.Error(codes.AlreadyExists, "organization has already purchased this masterclass")
	}
	if err != nil {
		logger.ExitMethodWithError("purchaseService.PurchaseMasterclass", err, "orgID", orgID, "masterclassID", masterclassID)
		return 0, status.Errorf(codes.Internal, "purchase failed: %v", err)
	}

	logger.ExitMethod("purchaseService.PurchaseMasterclass", "orgID", orgID, "masterclassID", masterclassID, "enrolledCount", enrolledCount)
	return enrolledCount, nil
}

// ListPurchases is intentionally broader than the purchase path: any member
// may see what their employer has bought, not just billing admins.
func (s *purchaseService) ListPurchases(ctx context.Context, callerID, orgID string) ([]domain.Purchase, error) {
	logger.EnterMethod("purchaseService.ListPurchases", "callerID", callerID, "orgID", orgID)

	if callerID == "" {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	if orgID == "" {
		return nil, status.Error(codes.InvalidArgument, "organization id is required")
	}

	authorized, err := s.isAdminOrMember(ctx, callerID, orgID)
	if err != nil {
		logger.ExitMethodWithError("purchaseService.ListPurchases", err, "orgID", orgID)
		return nil, status.Errorf(codes.Internal, "failed to check membership: %v", err)
	}
	if !authorized {
		return nil, status.Error(codes.PermissionDenied, "caller does not belong to this organization")
	}

	purchases, err := s.purchaseRepo.ListByOrg(ctx, orgID)
	if err != nil {
		logger.ExitMethodWithError("purchaseService.ListPurchases", err, "orgID", orgID)
		return nil, status.Errorf(codes.Internal, "failed to list purchases: %v", err)
	}

	logger.ExitMethod("purchaseService.ListPurchases", "orgID", orgID, "count", len(purchases))
	return purchases, nil
}

func (s *purchaseService) isAdminOrMember(ctx context.Context, callerID, orgID string) (bool, error) {
	_, err := s.orgRepo.GetAdmin(ctx, orgID, callerID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}

	_, err = s.memberRepo.GetByBoundUser(ctx, orgID, callerID)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	return false, nil
}
