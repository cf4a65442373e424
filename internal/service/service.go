package service

import (
	"context"
	"strconv"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/repository"
	"volunteerhub-backend/internal/security"
)

func itoa(id int32) string {
	return strconv.FormatInt(int64(id), 10)
}

type AccountService interface {
	// GetOrProvision returns the role ledger row for an authenticated
	// subject, creating a (user, active) row on first access.
	GetOrProvision(ctx context.Context, ident *security.Identity) (*domain.Account, error)
	UpdateProfile(ctx context.Context, userID, firstName, lastName, phone string) (*domain.Account, error)
	ListAccounts(ctx context.Context, actorID, role, search string, page, pageSize int32) ([]domain.Account, int32, error)
	ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) error
	Deactivate(ctx context.Context, actorID, targetID string) error
}

type OnboardingService interface {
	Submit(ctx context.Context, userID string, app *domain.OrganizerApplication) (*domain.OrganizerApplication, error)
	GetMine(ctx context.Context, userID string) (*domain.OrganizerApplication, error)
	List(ctx context.Context, actorID, status string, page, pageSize int32) ([]domain.OrganizerApplication, int32, error)
	Approve(ctx context.Context, actorID string, applicationID int32) (*domain.OrganizerApplication, error)
	Reject(ctx context.Context, actorID string, applicationID int32, reason string) (*domain.OrganizerApplication, error)
	Suspend(ctx context.Context, actorID string, applicationID int32, reason string) (*domain.OrganizerApplication, error)
	Stats(ctx context.Context, actorID string) (*OnboardingStats, error)
}

// OnboardingStats is the admin dashboard rollup.
type OnboardingStats struct {
	PendingApplications   int32 `json:"pending_applications"`
	VerifiedApplications  int32 `json:"verified_applications"`
	RejectedApplications  int32 `json:"rejected_applications"`
	SuspendedApplications int32 `json:"suspended_applications"`
	TotalOrganizers       int32 `json:"total_organizers"`
	TotalUsers            int32 `json:"total_users"`
}

type PostingService interface {
	Create(ctx context.Context, actorID string, posting *domain.Posting, accessKey string) (*domain.Posting, error)
	Update(ctx context.Context, actorID string, posting *domain.Posting, accessKey string) (*domain.Posting, error)
	Get(ctx context.Context, id int32) (*domain.Posting, error)
	List(ctx context.Context, visibility string, page, pageSize int32) ([]domain.Posting, int32, error)
	ListMine(ctx context.Context, actorID string, page, pageSize int32) ([]domain.Posting, int32, error)
}

type ApplicationService interface {
	Submit(ctx context.Context, actorID string, app *domain.Application, accessKey string) (*domain.Application, error)
	Decide(ctx context.Context, actorID string, applicationID int32, to domain.ApplicationStatus) (*domain.Application, error)
	Withdraw(ctx context.Context, actorID string, applicationID int32) (*domain.Application, error)
	ListMine(ctx context.Context, actorID, status string, page, pageSize int32) ([]domain.Application, int32, error)
	ListForPosting(ctx context.Context, actorID string, postingID int32, status string, page, pageSize int32) ([]domain.Application, int32, error)
	ListForOrganizer(ctx context.Context, actorID, status string, page, pageSize int32) ([]domain.Application, int32, error)
	Stats(ctx context.Context, actorID string, postingID int32) (*domain.ApplicationStats, error)
}

type AuditService interface {
	// Record appends an entry best-effort. A sink failure is logged and
	// swallowed so it never undoes the committed business transition.
	Record(ctx context.Context, actorID, action, targetType, targetID, detail string)
	List(ctx context.Context, actorID string, limit int32) ([]domain.AuditEntry, error)
}

type EmailService interface {
	SendOrganizerStatusNotification(ctx context.Context, email, organizationName, status, reason string) error
	SendApplicationStatusNotification(ctx context.Context, email, name, postingTitle, status string) error
	SendAdminNotification(ctx context.Context, email, subject, message string) error
}

// requireRole loads the caller's ledger row and applies the single role
// predicate. Token role claims never reach this path.
func requireRole(ctx context.Context, accounts repository.AccountRepository, actorID string, required domain.Role) (*domain.Account, error) {
	account, err := accounts.GetByID(ctx, actorID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, domain.ErrForbidden("no account on record for caller", required)
		}
		return nil, err
	}
	if !account.Can(required) {
		return nil, domain.ErrForbidden("caller lacks the required role or is not active", required)
	}
	return account, nil
}
