package postgres

import (
	"context"
	"database/sql"
	"errors"

	"elira-backend/internal/domain"
	"elira-backend/internal/repository"

	"github.com/lib/pq"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) GetByBoundUser(ctx context.Context, orgID, userID string) (*domain.Member, error) {
	m := &domain.Member{}
	query := `SELECT id, org_id, COALESCE(user_id, ''), name, email, status, enrolled_masterclasses, updated_on
	          FROM org_members WHERE org_id = $1 AND user_id = $2`
	err := r.db.QueryRowContext(ctx, query, orgID, userID).Scan(&m.ID, &m.OrgID, &m.UserID, &m.Name, &m.Email, &m.Status, pq.Array(&m.EnrolledMasterclasses), &m.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}
