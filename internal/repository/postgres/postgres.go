package postgres

import (
	"database/sql"

	"elira-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.OrganizationRepository
	repository.MemberRepository
	repository.MasterclassRepository
	repository.ProgressRepository
	repository.PurchaseRepository
	repository.PurchaseEventRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                      db,
		UserRepository:          NewUserRepository(db),
		OrganizationRepository:  NewOrganizationRepository(db),
		MemberRepository:        NewMemberRepository(db),
		MasterclassRepository:   NewMasterclassRepository(db),
		ProgressRepository:      NewProgressRepository(db),
		PurchaseRepository:      NewPurchaseRepository(db),
		PurchaseEventRepository: NewPurchaseEventRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
	}
}
