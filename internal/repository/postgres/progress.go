package postgres

import (
	"context"
	"database/sql"

	"elira-backend/internal/domain"
	"elira-backend/internal/repository"

	"github.com/lib/pq"
)

type progressRepository struct {
	db *sql.DB
}

func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) ListByUser(ctx context.Context, userID string) ([]domain.Progress, error) {
	query := `SELECT id, user_id, masterclass_id, current_module, completed_modules, status, enrolled_on, last_activity_on
	          FROM progress WHERE user_id = $1 ORDER BY enrolled_on DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.Progress
	for rows.Next() {
		var p domain.Progress
		if err := rows.Scan(&p.ID, &p.UserID, &p.MasterclassID, &p.CurrentModule, pq.Array(&p.CompletedModules), &p.Status, &p.EnrolledOn, &p.LastActivityOn); err != nil {
			return nil, err
		}
		records = append(records, p)
	}
	return records, rows.Err()
}
