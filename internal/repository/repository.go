package repository

import (
	"context"
	"time"

	"volunteerhub-backend/internal/domain"
)

type AccountRepository interface {
	GetByID(ctx context.Context, userID string) (*domain.Account, error)
	// CreateIfAbsent provisions a ledger row for an authenticated subject
	// that has none yet. Concurrent provisioning of the same subject must
	// leave exactly one row (insert-if-absent at the storage layer).
	CreateIfAbsent(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	// SetRoleAndStatus overwrites both fields in a single statement so a
	// concurrent reader sees either the fully-old or fully-new pair.
	SetRoleAndStatus(ctx context.Context, userID string, role domain.Role, status domain.AccountStatus) error
	List(ctx context.Context, role, search string, page, pageSize int32) ([]domain.Account, int32, error)
	ListAdminEmails(ctx context.Context) ([]string, error)
	CountByRole(ctx context.Context, role domain.Role) (int32, error)
}

type OrganizerApplicationRepository interface {
	// Create inserts a new pending application. A storage-level uniqueness
	// constraint on non-rejected applications per account turns a concurrent
	// double submission into a DuplicateApplication error.
	Create(ctx context.Context, app *domain.OrganizerApplication) error
	GetByID(ctx context.Context, id int32) (*domain.OrganizerApplication, error)
	GetByUserID(ctx context.Context, userID string) (*domain.OrganizerApplication, error)
	DeleteRejectedByUserID(ctx context.Context, userID string) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.OrganizerApplication, int32, error)
	CountByStatus(ctx context.Context, status domain.OrganizerApplicationStatus) (int32, error)
	CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int32, error)

	// Approve, Reject and Suspend execute the compound onboarding
	// transitions as single transactions: a compare-and-swap update of the
	// application row guarded by the expected source status, the paired
	// account role/status write, and (on approve/suspend) the profile
	// upsert or deactivation. A guard miss yields InvalidTransition with
	// the status actually found.
	Approve(ctx context.Context, app *domain.OrganizerApplication, profile *domain.OrganizerProfile) error
	Reject(ctx context.Context, app *domain.OrganizerApplication) error
	Suspend(ctx context.Context, app *domain.OrganizerApplication) error
}

// OrganizerProfileRepository reads the materialized organizer record. All
// profile writes happen inside the onboarding transitions on
// OrganizerApplicationRepository, so they stay atomic with the application
// and account updates.
type OrganizerProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.OrganizerProfile, error)
}

type PostingRepository interface {
	Create(ctx context.Context, posting *domain.Posting) error
	GetByID(ctx context.Context, id int32) (*domain.Posting, error)
	Update(ctx context.Context, posting *domain.Posting) error
	List(ctx context.Context, visibility string, page, pageSize int32) ([]domain.Posting, int32, error)
	ListByOrganizer(ctx context.Context, organizerID int32, page, pageSize int32) ([]domain.Posting, int32, error)
}

type ApplicationRepository interface {
	// Create inserts a pending application. The partial unique index on
	// (posting_id, user_id) over non-withdrawn rows closes the
	// check-then-insert race; a violation maps to DuplicateApplication.
	Create(ctx context.Context, app *domain.Application) error
	GetByID(ctx context.Context, id int32) (*domain.Application, error)
	GetActiveByPostingAndUser(ctx context.Context, postingID int32, userID string) (*domain.Application, error)
	// Decide flips pending -> approved/rejected with a status-guarded
	// update; Withdraw flips pending/approved -> withdrawn likewise.
	Decide(ctx context.Context, id int32, to domain.ApplicationStatus, decidedBy string, decidedAt time.Time) error
	Withdraw(ctx context.Context, id int32) error
	ListByUser(ctx context.Context, userID, status string, page, pageSize int32) ([]domain.Application, int32, error)
	ListByPosting(ctx context.Context, postingID int32, status string, page, pageSize int32) ([]domain.Application, int32, error)
	ListByOrganizer(ctx context.Context, organizerID int32, status string, page, pageSize int32) ([]domain.Application, int32, error)
	Stats(ctx context.Context, postingID int32) (*domain.ApplicationStats, error)
}

type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context, limit int32) ([]domain.AuditEntry, error)
}
