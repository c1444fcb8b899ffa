package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"elira-backend/internal/domain"
	"elira-backend/internal/logger"
	"elira-backend/internal/repository"

	"github.com/lib/pq"
)

type purchaseRepository struct {
	db *sql.DB
}

func NewPurchaseRepository(db *sql.DB) repository.PurchaseRepository {
	return &purchaseRepository{db: db}
}

// memberRow is the slice of a member the fan-out needs. Rows are fully read
// before any write is issued because the transaction holds a single
// connection.
type memberRow struct {
	id       string
	userID   sql.NullString
	enrolled []string
}

func (r *purchaseRepository) ExecutePurchase(ctx context.Context, req *repository.PurchaseRequest) (int32, error) {
	logger.EnterMethod("purchaseRepository.ExecutePurchase", "orgID", req.OrgID, "masterclassID", req.MasterclassID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		logger.ExitMethodWithError("purchaseRepository.ExecutePurchase", err, "orgID", req.OrgID)
		return 0, err
	}
	defer tx.Rollback()

	// Lock the organization row for the duration of the transaction. A
	// concurrent purchase of the same masterclass blocks here and then
	// fails the duplicate check against the committed set.
	var purchased []string
	err = tx.QueryRowContext(ctx,
		`SELECT purchased_masterclasses FROM organizations WHERE id = $1 FOR UPDATE`,
		req.OrgID).Scan(pq.Array(&purchased))
	if errors.Is(err, sql.ErrNoRows) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		logger.ExitMethodWithError("purchaseRepository.ExecutePurchase", err, "orgID", req.OrgID)
		return 0, err
	}
	for _, id := range purchased {
		if id == req.MasterclassID {
			return 0, repository.ErrAlreadyPurchased
		}
	}

	now := time.Now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE organizations
		 SET purchased_masterclasses = array_append(purchased_masterclasses, $2), updated_on = $3
		 WHERE id = $1`,
		req.OrgID, req.MasterclassID, now)
	if err != nil {
		logger.ExitMethodWithError("purchaseRepository.ExecutePurchase", err, "orgID", req.OrgID)
		return 0, err
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT id, user_id, enrolled_masterclasses FROM org_members
		 WHERE org_id = $1 AND status = 'active'
		 ORDER BY id FOR UPDATE`,
		req.OrgID)
	if err != nil {
		logger.ExitMethodWithError("purchaseRepository.ExecutePurchase", err, "orgID", req.OrgID)
		return 0, err
	}

	var members []memberRow
	for rows.Next() {
		var m memberRow
		if err := rows.Scan(&m.id, &m.userID, pq.Array(&m.enrolled)); err != nil {
			rows.Close()
			return 0, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	var enrolledCount int32
	// Must stay non-nil: a nil slice serializes to SQL NULL and the
	// outbox column rejects it.
	enrolledUserIDs := []string{}
	for _, m := range members {
		already := false
		for _, id := range m.enrolled {
			if id == req.MasterclassID {
				already = true
				break
			}
		}
		if already {
			// Held from a prior individual grant; not recounted.
			continue
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE org_members
			 SET enrolled_masterclasses = array_append(enrolled_masterclasses, $2), updated_on = $3
			 WHERE id = $1`,
			m.id, req.MasterclassID, now)
		if err != nil {
			logger.ExitMethodWithError("purchaseRepository.ExecutePurchase", err, "memberID", m.id)
			return 0, err
		}

		if m.userID.Valid && m.userID.String != "" {
			p := domain.NewProgress(m.userID.String, req.MasterclassID, now)
			_, err = tx.ExecContext(ctx,
				`INSERT INTO progress (id, user_id, masterclass_id, current_module, completed_modules, status, enrolled_on, last_activity_on)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				 ON CONFLICT (id) DO NOTHING`,
				p.ID, p.UserID, p.MasterclassID, p.CurrentModule, pq.Array(p.CompletedModules), string(p.Status), p.EnrolledOn, p.LastActivityOn)
			if err != nil {
				logger.ExitMethodWithError("purchaseRepository.ExecutePurchase", err, "memberID", m.id)
				return 0, err
			}
			enrolledUserIDs = append(enrolledUserIDs, m.userID.String)
		}
		enrolledCount++
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO purchase_events (id, org_id, masterclass_id, masterclass_title, price_cents, purchased_by, payment_intent_id, employees_enrolled, enrolled_user_ids, status, attempts, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 'pending', 0, $10)`,
		req.EventID, req.OrgID, req.MasterclassID, req.MasterclassTitle, req.PriceCents,
		req.PurchasedBy, nullIfEmpty(req.PaymentIntentID), enrolledCount, pq.Array(enrolledUserIDs), now)
	if err != nil {
		logger.ExitMethodWithError("purchaseRepository.ExecutePurchase", err, "orgID", req.OrgID)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		logger.ExitMethodWithError("purchaseRepository.ExecutePurchase", err, "orgID", req.OrgID)
		return 0, err
	}

	logger.ExitMethod("purchaseRepository.ExecutePurchase", "orgID", req.OrgID, "enrolledCount", enrolledCount)
	return enrolledCount, nil
}

func (r *purchaseRepository) CreateLedgerEntry(ctx context.Context, p *domain.Purchase) error {
	// Keyed by the outbox event ID so relay retries are no-ops.
	query := `INSERT INTO purchases (id, org_id, masterclass_id, masterclass_title, price_cents, purchased_by, payment_intent_id, employees_enrolled, purchased_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.OrgID, p.MasterclassID, p.MasterclassTitle,
		p.PriceCents, p.PurchasedBy, nullIfEmpty(p.PaymentIntentID), p.EmployeesEnrolled, p.PurchasedOn)
	return err
}

func (r *purchaseRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.Purchase, error) {
	query := `SELECT id, org_id, masterclass_id, masterclass_title, price_cents, purchased_by, COALESCE(payment_intent_id, ''), employees_enrolled, purchased_on
	          FROM purchases WHERE org_id = $1 ORDER BY purchased_on DESC`
	rows, err := r.db.QueryContext(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.OrgID, &p.MasterclassID, &p.MasterclassTitle, &p.PriceCents,
			&p.PurchasedBy, &p.PaymentIntentID, &p.EmployeesEnrolled, &p.PurchasedOn); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
