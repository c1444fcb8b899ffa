package jobs

import (
	"context"
	"fmt"

	"elira-backend/internal/domain"
	"elira-backend/internal/logger"
	"elira-backend/internal/utils"
)

// DispatchPurchaseEvents relays pending outbox events: each becomes a ledger
// entry, a confirmation email to the purchaser, and an in-app notification
// per enrolled member. The ledger write is the correctness-critical step; if
// it fails the event stays pending and is retried on the next run. Email and
// notifications are best-effort.
func (jr *JobRunner) DispatchPurchaseEvents() {
	jr.runWithRecovery("DispatchPurchaseEvents", func() {
		ctx := context.Background()

		events, err := jr.eventRepo.ListPending(ctx, int32(jr.config.Scheduler.DispatchBatchSize))
		if err != nil {
			logger.Error("Failed to list pending purchase events", "error", err)
			return
		}
		if len(events) == 0 {
			return
		}
		logger.Info("Dispatching purchase events", "count", len(events))

		for _, event := range events {
			if err := jr.dispatchEvent(ctx, &event); err != nil {
				logger.Error("Failed to dispatch purchase event", "eventID", event.ID, "attempts", event.Attempts, "error", err)
				if err := jr.eventRepo.RecordAttempt(ctx, event.ID); err != nil {
					logger.Error("Failed to record dispatch attempt", "eventID", event.ID, "error", err)
				}
				continue
			}
			if err := jr.eventRepo.MarkDispatched(ctx, event.ID); err != nil {
				// Ledger entry exists; the retry is a no-op thanks to the
				// event-keyed insert, so this is safe.
				logger.Error("Failed to mark event dispatched", "eventID", event.ID, "error", err)
			}
		}
	})
}

func (jr *JobRunner) dispatchEvent(ctx context.Context, event *domain.PurchaseEvent) error {
	if err := jr.purchaseRepo.CreateLedgerEntry(ctx, event.LedgerEntry()); err != nil {
		return fmt.Errorf("failed to create ledger entry: %w", err)
	}

	org, err := jr.orgRepo.GetByID(ctx, event.OrgID)
	orgName := event.OrgID
	if err == nil {
		orgName = org.Name
	}

	// Notify each newly enrolled member with a bound account.
	for _, userID := range event.EnrolledUserIDs {
		notification := &domain.Notification{
			UserID:  userID,
			OrgID:   event.OrgID,
			Title:   "New masterclass available",
			Message: fmt.Sprintf("%s enrolled you in %q", orgName, event.MasterclassTitle),
			Attributes: map[string]string{
				"topic":          "company_purchase",
				"masterclass_id": event.MasterclassID,
				"purchase_id":    event.ID,
			},
		}
		if err := jr.notificationRepo.Create(ctx, notification); err != nil {
			logger.Error("Failed to create enrollment notification", "eventID", event.ID, "userID", userID, "error", err)
		}
	}

	// Confirmation email to the purchaser.
	purchaser, err := jr.userRepo.GetByID(ctx, event.PurchasedBy)
	if err != nil {
		logger.Warn("Purchaser account not found, skipping confirmation email", "eventID", event.ID, "purchasedBy", event.PurchasedBy)
		return nil
	}
	if err := jr.emailSvc.SendPurchaseConfirmation(ctx, purchaser.Email, purchaser.Name, orgName,
		event.MasterclassTitle, event.PriceCents, event.EmployeesEnrolled); err != nil {
		logger.Error("Failed to send purchase confirmation email", "eventID", event.ID,
			"amount", utils.FormatCents(event.PriceCents), "error", err)
	}
	return nil
}

// PurgeDispatchedEvents deletes dispatched outbox rows past the retention
// window.
func (jr *JobRunner) PurgeDispatchedEvents() {
	jr.runWithRecovery("PurgeDispatchedEvents", func() {
		ctx := context.Background()

		deleted, err := jr.eventRepo.PurgeDispatchedBefore(ctx, int32(jr.config.Scheduler.EventRetentionDays))
		if err != nil {
			logger.Error("Failed to purge dispatched purchase events", "error", err)
			return
		}
		if deleted > 0 {
			logger.Info("Purged dispatched purchase events", "deleted", deleted, "retentionDays", jr.config.Scheduler.EventRetentionDays)
		}
	})
}
