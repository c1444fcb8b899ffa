package domain

type MemberStatus string

const (
	MemberStatusActive   MemberStatus = "active"
	MemberStatusInactive MemberStatus = "inactive"
)

// Member is an employee seat inside an organization. UserID is empty until
// the employee accepts their invitation and creates an account; entitlements
// can be granted before that, progress records cannot.
type Member struct {
	ID                    string       `json:"id"`
	OrgID                 string       `json:"org_id"`
	UserID                string       `json:"user_id,omitempty"`
	Name                  string       `json:"name"`
	Email                 string       `json:"email"`
	Status                MemberStatus `json:"status"`
	EnrolledMasterclasses []string     `json:"enrolled_masterclasses"`
	UpdatedOn             string       `json:"updated_on"`
}

// HasMasterclass reports whether the member already holds access to the
// given masterclass.
func (m *Member) HasMasterclass(masterclassID string) bool {
	for _, id := range m.EnrolledMasterclasses {
		if id == masterclassID {
			return true
		}
	}
	return false
}
