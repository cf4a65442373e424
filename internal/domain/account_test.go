package domain

import "testing"

func TestAccountCan(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		status   AccountStatus
		required Role
		want     bool
	}{
		{"ActiveUserIsUser", RoleUser, AccountStatusActive, RoleUser, true},
		{"ActiveUserIsNotOrganizer", RoleUser, AccountStatusActive, RoleOrganizer, false},
		{"ActiveUserIsNotAdmin", RoleUser, AccountStatusActive, RoleAdmin, false},
		{"ActiveOrganizerIsOrganizer", RoleOrganizer, AccountStatusActive, RoleOrganizer, true},
		{"ActiveOrganizerIsNotAdmin", RoleOrganizer, AccountStatusActive, RoleAdmin, false},
		{"AdminImpliesOrganizer", RoleAdmin, AccountStatusActive, RoleOrganizer, true},
		{"AdminIsAdmin", RoleAdmin, AccountStatusActive, RoleAdmin, true},
		{"PendingOrganizerHasNoPrivileges", RoleOrganizer, AccountStatusPending, RoleOrganizer, false},
		{"SuspendedOrganizerHasNoPrivileges", RoleOrganizer, AccountStatusSuspended, RoleOrganizer, false},
		{"SuspendedOrganizerIsNotEvenUser", RoleOrganizer, AccountStatusSuspended, RoleUser, false},
		{"InactiveAdminHasNoPrivileges", RoleAdmin, AccountStatusInactive, RoleAdmin, false},
		{"RejectedUserHasNoPrivileges", RoleUser, AccountStatusRejected, RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Account{Role: tt.role, Status: tt.status}
			if got := a.Can(tt.required); got != tt.want {
				t.Errorf("Can(%s) for %s/%s = %v, want %v", tt.required, tt.role, tt.status, got, tt.want)
			}
		})
	}

	t.Run("NilAccount", func(t *testing.T) {
		var a *Account
		if a.Can(RoleUser) {
			t.Error("nil account must never be authorized")
		}
	})
}

func TestKindOf(t *testing.T) {
	if KindOf(ErrNotFound("posting", "3")) != KindNotFound {
		t.Error("expected KindNotFound")
	}
	if KindOf(assertErr{}) != KindUnavailable {
		t.Error("non-domain errors must classify as unavailable")
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
