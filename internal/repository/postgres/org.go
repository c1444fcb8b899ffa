package postgres

import (
	"context"
	"database/sql"
	"errors"

	"elira-backend/internal/domain"
	"elira-backend/internal/repository"

	"github.com/lib/pq"
)

type organizationRepository struct {
	db *sql.DB
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT id, name, purchased_masterclasses, created_on, updated_on FROM organizations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name, pq.Array(&o.PurchasedMasterclasses), &o.CreatedOn, &o.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *organizationRepository) GetAdmin(ctx context.Context, orgID, userID string) (*domain.OrgAdmin, error) {
	a := &domain.OrgAdmin{}
	query := `SELECT org_id, user_id, role, can_manage_billing FROM org_admins WHERE org_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, orgID, userID).Scan(&a.OrgID, &a.UserID, &a.Role, &a.CanManageBilling)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
