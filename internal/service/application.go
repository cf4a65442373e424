package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/repository"
)

type applicationService struct {
	applicationRepo repository.ApplicationRepository
	postingRepo     repository.PostingRepository
	profileRepo     repository.OrganizerProfileRepository
	accountRepo     repository.AccountRepository
	emailSvc        EmailService
}

func NewApplicationService(
	applicationRepo repository.ApplicationRepository,
	postingRepo repository.PostingRepository,
	profileRepo repository.OrganizerProfileRepository,
	accountRepo repository.AccountRepository,
	emailSvc EmailService,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		postingRepo:     postingRepo,
		profileRepo:     profileRepo,
		accountRepo:     accountRepo,
		emailSvc:        emailSvc,
	}
}

// Submit runs posting lookup, the access gate, the duplicate pre-check and
// the insert in that order. The pre-check is advisory; the partial unique
// index is what actually holds the one-active-application invariant under
// races, so a losing insert still maps to DuplicateApplication.
func (s *applicationService) Submit(ctx context.Context, actorID string, app *domain.Application, accessKey string) (*domain.Application, error) {
	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleUser); err != nil {
		return nil, err
	}

	if strings.TrimSpace(app.Name) == "" {
		return nil, domain.ErrValidation("applicant name is required")
	}
	if strings.TrimSpace(app.Email) == "" {
		return nil, domain.ErrValidation("applicant email is required")
	}
	if strings.TrimSpace(app.Skills) == "" {
		return nil, domain.ErrValidation("skills are required")
	}
	if strings.TrimSpace(app.Availability) == "" {
		return nil, domain.ErrValidation("availability is required")
	}
	if strings.TrimSpace(app.PhoneNumber) == "" {
		return nil, domain.ErrValidation("phone number is required")
	}
	if !domain.ValidGender(app.Sex) {
		return nil, domain.ErrValidation("sex must be male, female or other")
	}

	posting, err := s.postingRepo.GetByID(ctx, app.PostingID)
	if err != nil {
		return nil, err
	}
	if posting.Status != domain.PostingStatusActive {
		return nil, domain.ErrInvalidTransition("posting", itoa(posting.ID), string(posting.Status))
	}
	if err := CheckPostingAccess(posting, accessKey); err != nil {
		return nil, err
	}

	existing, err := s.applicationRepo.GetActiveByPostingAndUser(ctx, app.PostingID, actorID)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateApplication("application",
			fmt.Sprintf("an application in status %q already exists for this posting", existing.Status))
	}

	app.UserID = actorID
	app.Status = domain.ApplicationStatusPending
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

// Decide flips a pending application to approved or rejected. Only the
// owning organizer or an admin may decide; withdrawn is not a decision an
// organizer can impose.
func (s *applicationService) Decide(ctx context.Context, actorID string, applicationID int32, to domain.ApplicationStatus) (*domain.Application, error) {
	actor, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleOrganizer)
	if err != nil {
		return nil, err
	}

	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	if to != domain.ApplicationStatusApproved && to != domain.ApplicationStatusRejected {
		if to == domain.ApplicationStatusWithdrawn {
			// Withdrawal belongs to the applicant, never to a reviewer.
			return nil, domain.ErrInvalidTransition("application", itoa(applicationID), string(app.Status))
		}
		return nil, domain.ErrValidation("decision must be approved or rejected")
	}

	posting, err := s.postingRepo.GetByID(ctx, app.PostingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizePostingOwnership(ctx, actor, posting); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.applicationRepo.Decide(ctx, applicationID, to, actorID, now); err != nil {
		return nil, err
	}
	app.Status = to
	app.DecidedBy = &actorID
	app.DecidedAt = &now

	_ = s.emailSvc.SendApplicationStatusNotification(ctx, app.Email, app.Name, posting.Title, string(to))

	return app, nil
}

// Withdraw is applicant-only and valid from pending or approved.
func (s *applicationService) Withdraw(ctx context.Context, actorID string, applicationID int32) (*domain.Application, error) {
	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.UserID != actorID {
		return nil, domain.ErrForbidden("only the applicant can withdraw an application", domain.RoleUser)
	}

	if err := s.applicationRepo.Withdraw(ctx, applicationID); err != nil {
		return nil, err
	}
	app.Status = domain.ApplicationStatusWithdrawn
	return app, nil
}

func (s *applicationService) ListMine(ctx context.Context, actorID, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	return s.applicationRepo.ListByUser(ctx, actorID, status, page, pageSize)
}

func (s *applicationService) ListForPosting(ctx context.Context, actorID string, postingID int32, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	actor, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleOrganizer)
	if err != nil {
		return nil, 0, err
	}
	posting, err := s.postingRepo.GetByID(ctx, postingID)
	if err != nil {
		return nil, 0, err
	}
	if err := s.authorizePostingOwnership(ctx, actor, posting); err != nil {
		return nil, 0, err
	}
	return s.applicationRepo.ListByPosting(ctx, postingID, status, page, pageSize)
}

func (s *applicationService) ListForOrganizer(ctx context.Context, actorID, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleOrganizer); err != nil {
		return nil, 0, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}
	return s.applicationRepo.ListByOrganizer(ctx, profile.ID, status, page, pageSize)
}

func (s *applicationService) Stats(ctx context.Context, actorID string, postingID int32) (*domain.ApplicationStats, error) {
	actor, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleOrganizer)
	if err != nil {
		return nil, err
	}
	posting, err := s.postingRepo.GetByID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizePostingOwnership(ctx, actor, posting); err != nil {
		return nil, err
	}
	return s.applicationRepo.Stats(ctx, postingID)
}

func (s *applicationService) authorizePostingOwnership(ctx context.Context, actor *domain.Account, posting *domain.Posting) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if posting.OrganizerID == nil {
		return domain.ErrForbidden("only admins can manage platform postings", domain.RoleAdmin)
	}
	profile, err := s.profileRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return domain.ErrForbidden("caller does not own this posting", domain.RoleOrganizer)
		}
		return err
	}
	if profile.ID != *posting.OrganizerID {
		return domain.ErrForbidden("caller does not own this posting", domain.RoleOrganizer)
	}
	return nil
}
