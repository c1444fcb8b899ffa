package postgres

import (
	"context"
	"database/sql"
	"errors"

	"elira-backend/internal/domain"
	"elira-backend/internal/repository"
)

type masterclassRepository struct {
	db *sql.DB
}

func NewMasterclassRepository(db *sql.DB) repository.MasterclassRepository {
	return &masterclassRepository{db: db}
}

func (r *masterclassRepository) GetByID(ctx context.Context, id string) (*domain.Masterclass, error) {
	m := &domain.Masterclass{}
	query := `SELECT id, title, COALESCE(description, ''), price_cents, module_count, created_on FROM masterclasses WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Title, &m.Description, &m.PriceCents, &m.ModuleCount, &m.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *masterclassRepository) List(ctx context.Context) ([]domain.Masterclass, error) {
	query := `SELECT id, title, COALESCE(description, ''), price_cents, module_count, created_on FROM masterclasses ORDER BY title`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []domain.Masterclass
	for rows.Next() {
		var m domain.Masterclass
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.PriceCents, &m.ModuleCount, &m.CreatedOn); err != nil {
			return nil, err
		}
		classes = append(classes, m)
	}
	return classes, rows.Err()
}
