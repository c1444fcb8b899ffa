package postgres_test

import (
	"context"
	"testing"
	"time"

	"elira-backend/internal/domain"
	"elira-backend/internal/repository"
	"elira-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPurchaseRepository_ExecutePurchase(t *testing.T) {
	ctx := context.Background()

	req := &repository.PurchaseRequest{
		EventID:          "evt-1",
		OrgID:            "org-1",
		MasterclassID:    "mc-1",
		MasterclassTitle: "Leadership Fundamentals",
		PriceCents:       149900,
		PurchasedBy:      "admin-1",
		PaymentIntentID:  "pi_123",
	}

	t.Run("FanOutAcrossMembers", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewPurchaseRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT purchased_masterclasses FROM organizations").
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows([]string{"purchased_masterclasses"}).AddRow("{mc-other}"))
		mock.ExpectExec("UPDATE organizations").
			WithArgs("org-1", "mc-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Three active members: one bound, one never invited, one who
		// already holds the masterclass from an individual grant.
		mock.ExpectQuery("SELECT id, user_id, enrolled_masterclasses FROM org_members").
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "enrolled_masterclasses"}).
				AddRow("m-1", "user-1", "{}").
				AddRow("m-2", nil, "{}").
				AddRow("m-3", "user-3", "{mc-1}"))

		// Bound member: entitlement plus a progress record.
		mock.ExpectExec("UPDATE org_members").
			WithArgs("m-1", "mc-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO progress").
			WithArgs("user-1_mc-1", "user-1", "mc-1", int32(1), sqlmock.AnyArg(), "active", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// Unbound member: entitlement only.
		mock.ExpectExec("UPDATE org_members").
			WithArgs("m-2", "mc-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectExec("INSERT INTO purchase_events").
			WithArgs("evt-1", "org-1", "mc-1", "Leadership Fundamentals", int32(149900),
				"admin-1", sqlmock.AnyArg(), int32(2), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		count, err := repo.ExecutePurchase(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, int32(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ZeroActiveMembers", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewPurchaseRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT purchased_masterclasses FROM organizations").
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows([]string{"purchased_masterclasses"}).AddRow("{}"))
		mock.ExpectExec("UPDATE organizations").
			WithArgs("org-1", "mc-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT id, user_id, enrolled_masterclasses FROM org_members").
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "enrolled_masterclasses"}))

		// The enrolled_user_ids column is NOT NULL; with nobody newly
		// enrolled the insert must carry an empty array, never NULL.
		mock.ExpectExec("INSERT INTO purchase_events").
			WithArgs("evt-1", "org-1", "mc-1", "Leadership Fundamentals", int32(149900),
				"admin-1", sqlmock.AnyArg(), int32(0), "{}", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		count, err := repo.ExecutePurchase(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, int32(0), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoBoundIdentities", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewPurchaseRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT purchased_masterclasses FROM organizations").
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows([]string{"purchased_masterclasses"}).AddRow("{}"))
		mock.ExpectExec("UPDATE organizations").
			WithArgs("org-1", "mc-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT id, user_id, enrolled_masterclasses FROM org_members").
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "enrolled_masterclasses"}).
				AddRow("m-1", nil, "{}"))
		mock.ExpectExec("UPDATE org_members").
			WithArgs("m-1", "mc-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		// One seat entitled but unbound: counted, yet no user IDs to
		// notify, so the array is empty rather than NULL.
		mock.ExpectExec("INSERT INTO purchase_events").
			WithArgs("evt-1", "org-1", "mc-1", "Leadership Fundamentals", int32(149900),
				"admin-1", sqlmock.AnyArg(), int32(1), "{}", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		count, err := repo.ExecutePurchase(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AlreadyPurchased", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewPurchaseRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT purchased_masterclasses FROM organizations").
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows([]string{"purchased_masterclasses"}).AddRow("{mc-1,mc-other}"))
		mock.ExpectRollback()

		_, err = repo.ExecutePurchase(ctx, req)
		assert.ErrorIs(t, err, repository.ErrAlreadyPurchased)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OrganizationMissing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewPurchaseRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT purchased_masterclasses FROM organizations").
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows([]string{"purchased_masterclasses"}))
		mock.ExpectRollback()

		_, err = repo.ExecutePurchase(ctx, req)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("MemberUpdateFailureRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := postgres.NewPurchaseRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT purchased_masterclasses FROM organizations").
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows([]string{"purchased_masterclasses"}).AddRow("{}"))
		mock.ExpectExec("UPDATE organizations").
			WithArgs("org-1", "mc-1", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT id, user_id, enrolled_masterclasses FROM org_members").
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "enrolled_masterclasses"}).
				AddRow("m-1", "user-1", "{}"))
		mock.ExpectExec("UPDATE org_members").
			WithArgs("m-1", "mc-1", sqlmock.AnyArg()).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err = repo.ExecutePurchase(ctx, req)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPurchaseRepository_CreateLedgerEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()
	repo := postgres.NewPurchaseRepository(db)

	p := &domain.Purchase{
		ID:                "evt-1",
		OrgID:             "org-1",
		MasterclassID:     "mc-1",
		MasterclassTitle:  "Leadership Fundamentals",
		PriceCents:        149900,
		PurchasedBy:       "admin-1",
		EmployeesEnrolled: 2,
		PurchasedOn:       time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO purchases").
		WithArgs(p.ID, p.OrgID, p.MasterclassID, p.MasterclassTitle, p.PriceCents,
			p.PurchasedBy, sqlmock.AnyArg(), p.EmployeesEnrolled, p.PurchasedOn).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.CreateLedgerEntry(context.Background(), p)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseRepository_ListByOrg(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()
	repo := postgres.NewPurchaseRepository(db)

	newer := time.Now().UTC()
	older := newer.Add(-24 * time.Hour)
	mock.ExpectQuery("SELECT (.+) FROM purchases WHERE org_id").
		WithArgs("org-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "org_id", "masterclass_id", "masterclass_title", "price_cents", "purchased_by", "payment_intent_id", "employees_enrolled", "purchased_on"}).
			AddRow("evt-2", "org-1", "mc-2", "Negotiation", int32(99900), "admin-1", "", int32(4), newer).
			AddRow("evt-1", "org-1", "mc-1", "Leadership", int32(149900), "admin-1", "pi_123", int32(2), older))

	purchases, err := repo.ListByOrg(context.Background(), "org-1")
	assert.NoError(t, err)
	assert.Len(t, purchases, 2)
	assert.Equal(t, "evt-2", purchases[0].ID)
	assert.Equal(t, "evt-1", purchases[1].ID)
	assert.Equal(t, "pi_123", purchases[1].PaymentIntentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
