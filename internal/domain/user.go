package domain

// User is a bound identity: the account an employee links to their member
// seat after accepting an invitation. Accounts are provisioned by the
// invitation flow (or seed data in dev); this service reads them for auth
// and for delivering purchase emails.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	CreatedOn    string `json:"created_on"`
}
