package postgres

import (
	"context"
	"database/sql"
	"time"

	"elira-backend/internal/domain"
	"elira-backend/internal/logger"
	"elira-backend/internal/repository"

	"github.com/lib/pq"
)

type purchaseEventRepository struct {
	db *sql.DB
}

func NewPurchaseEventRepository(db *sql.DB) repository.PurchaseEventRepository {
	return &purchaseEventRepository{db: db}
}

func (r *purchaseEventRepository) ListPending(ctx context.Context, limit int32) ([]domain.PurchaseEvent, error) {
	query := `SELECT id, org_id, masterclass_id, masterclass_title, price_cents, purchased_by, COALESCE(payment_intent_id, ''), employees_enrolled, enrolled_user_ids, status, attempts, created_on
	          FROM purchase_events WHERE status = 'pending' ORDER BY created_on ASC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.PurchaseEvent
	for rows.Next() {
		var e domain.PurchaseEvent
		if err := rows.Scan(&e.ID, &e.OrgID, &e.MasterclassID, &e.MasterclassTitle, &e.PriceCents,
			&e.PurchasedBy, &e.PaymentIntentID, &e.EmployeesEnrolled, pq.Array(&e.EnrolledUserIDs),
			&e.Status, &e.Attempts, &e.CreatedOn); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *purchaseEventRepository) MarkDispatched(ctx context.Context, id string) error {
	query := `UPDATE purchase_events SET status = 'dispatched', dispatched_on = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	return err
}

func (r *purchaseEventRepository) RecordAttempt(ctx context.Context, id string) error {
	query := `UPDATE purchase_events SET attempts = attempts + 1 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *purchaseEventRepository) PurgeDispatchedBefore(ctx context.Context, days int32) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -int(days))
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM purchase_events WHERE status = 'dispatched' AND dispatched_on < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	deleted, err := result.RowsAffected()
	logger.DatabaseResult("DELETE", deleted, err, "table", "purchase_events")
	return deleted, err
}
