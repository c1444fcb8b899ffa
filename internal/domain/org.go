package domain

type Organization struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	PurchasedMasterclasses []string `json:"purchased_masterclasses"`
	CreatedOn              string   `json:"created_on"`
	UpdatedOn              string   `json:"updated_on"`
}

type AdminRole string

const (
	AdminRoleOwner       AdminRole = "owner"
	AdminRoleMemberAdmin AdminRole = "member-admin"
)

// OrgAdmin is an administrator record scoped to one organization. Purchasing
// requires the owner role or an explicit billing permission; plain admins can
// manage members but cannot spend.
type OrgAdmin struct {
	OrgID            string    `json:"org_id"`
	UserID           string    `json:"user_id"`
	Role             AdminRole `json:"role"`
	CanManageBilling bool      `json:"can_manage_billing"`
}

// CanPurchase reports whether this admin may buy masterclasses on behalf of
// the organization.
func (a *OrgAdmin) CanPurchase() bool {
	return a.Role == AdminRoleOwner || a.CanManageBilling
}
