package domain

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleOrganizer Role = "organizer"
	RoleAdmin     Role = "admin"
)

type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusPending   AccountStatus = "pending"
	AccountStatusRejected  AccountStatus = "rejected"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusInactive  AccountStatus = "inactive"
)

// Account is the authoritative role/status record for an identity-provider
// subject. UserID is the canonical 36-character dashed UUID issued by the
// identity provider; rows are provisioned locally on first access and are
// never deleted, only moved to a soft status.
type Account struct {
	UserID    string        `json:"user_id"`
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Phone     string        `json:"phone"`
	Role      Role          `json:"role"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Can is the single authorization predicate consulted by every privileged
// workflow entry point. Role claims carried in tokens are advisory only; the
// caller must pass an Account freshly loaded from the store.
//
// Organizer privileges require status=active: an account with role=organizer
// and status=pending is an onboarding still in flight.
func (a *Account) Can(required Role) bool {
	if a == nil || a.Status != AccountStatusActive {
		return false
	}
	switch required {
	case RoleAdmin:
		return a.Role == RoleAdmin
	case RoleOrganizer:
		return a.Role == RoleOrganizer || a.Role == RoleAdmin
	case RoleUser:
		return true
	}
	return false
}

func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

func ValidAccountStatus(s AccountStatus) bool {
	switch s {
	case AccountStatusActive, AccountStatusPending, AccountStatusRejected,
		AccountStatusSuspended, AccountStatusInactive:
		return true
	}
	return false
}
