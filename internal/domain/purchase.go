package domain

import "time"

// Purchase is an append-only ledger entry describing one completed company
// purchase. Title and price are snapshots taken at purchase time so later
// catalog edits do not rewrite billing history.
type Purchase struct {
	ID                string    `json:"id"`
	OrgID             string    `json:"org_id"`
	MasterclassID     string    `json:"masterclass_id"`
	MasterclassTitle  string    `json:"masterclass_title"`
	PriceCents        int32     `json:"price_cents"`
	PurchasedBy       string    `json:"purchased_by"`
	PaymentIntentID   string    `json:"payment_intent_id,omitempty"`
	EmployeesEnrolled int32     `json:"employees_enrolled"`
	PurchasedOn       time.Time `json:"purchased_on"`
}

type PurchaseEventStatus string

const (
	PurchaseEventPending    PurchaseEventStatus = "pending"
	PurchaseEventDispatched PurchaseEventStatus = "dispatched"
)

// PurchaseEvent is the outbox row written in the same transaction as the
// entitlement fan-out. The relay job turns it into a ledger entry, a
// confirmation email, and member notifications; until that succeeds the
// event stays pending and is retried.
type PurchaseEvent struct {
	ID                string              `json:"id"`
	OrgID             string              `json:"org_id"`
	MasterclassID     string              `json:"masterclass_id"`
	MasterclassTitle  string              `json:"masterclass_title"`
	PriceCents        int32               `json:"price_cents"`
	PurchasedBy       string              `json:"purchased_by"`
	PaymentIntentID   string              `json:"payment_intent_id,omitempty"`
	EmployeesEnrolled int32               `json:"employees_enrolled"`
	EnrolledUserIDs   []string            `json:"enrolled_user_ids"`
	Status            PurchaseEventStatus `json:"status"`
	Attempts          int32               `json:"attempts"`
	CreatedOn         time.Time           `json:"created_on"`
	DispatchedOn      *time.Time          `json:"dispatched_on,omitempty"`
}

// LedgerEntry converts the event into the purchase record it stands for.
// The event ID doubles as the purchase ID, which makes relay retries
// idempotent.
func (e *PurchaseEvent) LedgerEntry() *Purchase {
	return &Purchase{
		ID:                e.ID,
		OrgID:             e.OrgID,
		MasterclassID:     e.MasterclassID,
		MasterclassTitle:  e.MasterclassTitle,
		PriceCents:        e.PriceCents,
		PurchasedBy:       e.PurchasedBy,
		PaymentIntentID:   e.PaymentIntentID,
		EmployeesEnrolled: e.EmployeesEnrolled,
		PurchasedOn:       e.CreatedOn,
	}
}
