package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/repository"
)

const minReviewReasonLength = 10

type onboardingService struct {
	applicationRepo repository.OrganizerApplicationRepository
	accountRepo     repository.AccountRepository
	auditSvc        AuditService
	emailSvc        EmailService
}

func NewOnboardingService(
	applicationRepo repository.OrganizerApplicationRepository,
	accountRepo repository.AccountRepository,
	auditSvc AuditService,
	emailSvc EmailService,
) OnboardingService {
	return &onboardingService{
		applicationRepo: applicationRepo,
		accountRepo:     accountRepo,
		auditSvc:        auditSvc,
		emailSvc:        emailSvc,
	}
}

// Submit files a new organizer application. A prior rejected row is deleted
// first so re-application starts clean; the partial unique index over
// non-rejected rows turns a racing double submission into
// DuplicateApplication regardless of what the pre-check saw.
func (s *onboardingService) Submit(ctx context.Context, userID string, app *domain.OrganizerApplication) (*domain.OrganizerApplication, error) {
	if strings.TrimSpace(app.OrganizationName) == "" {
		return nil, domain.ErrValidation("organization name is required")
	}
	if strings.TrimSpace(app.Email) == "" {
		return nil, domain.ErrValidation("contact email is required")
	}
	if strings.TrimSpace(app.Phone) == "" {
		return nil, domain.ErrValidation("contact phone is required")
	}
	if !domain.ValidOrganizerType(app.OrganizerType) {
		return nil, domain.ErrValidation(fmt.Sprintf("unknown organizer type %q", app.OrganizerType))
	}

	existing, err := s.applicationRepo.GetByUserID(ctx, userID)
	if err != nil && !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case domain.OrganizerApplicationStatusPending, domain.OrganizerApplicationStatusVerified:
			return nil, domain.ErrDuplicateApplication("organizer_application",
				fmt.Sprintf("an application in status %q is already on file", existing.Status))
		case domain.OrganizerApplicationStatusSuspended:
			return nil, domain.ErrInvalidTransition("organizer application",
				fmt.Sprintf("%d", existing.ID), string(existing.Status))
		case domain.OrganizerApplicationStatusRejected:
			if err := s.applicationRepo.DeleteRejectedByUserID(ctx, userID); err != nil {
				return nil, err
			}
		}
	}

	app.UserID = userID
	app.Status = domain.OrganizerApplicationStatusPending
	app.SubmittedAt = time.Now().UTC()
	if err := s.applicationRepo.Create(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *onboardingService) GetMine(ctx context.Context, userID string) (*domain.OrganizerApplication, error) {
	return s.applicationRepo.GetByUserID(ctx, userID)
}

func (s *onboardingService) List(ctx context.Context, actorID, status string, page, pageSize int32) ([]domain.OrganizerApplication, int32, error) {
	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdmin); err != nil {
		return nil, 0, err
	}
	return s.applicationRepo.List(ctx, status, page, pageSize)
}

// Approve moves pending -> verified, grants the organizer role and upserts
// the public profile, all in one storage transaction. The status email and
// audit entry ride behind the commit and never undo it.
func (s *onboardingService) Approve(ctx context.Context, actorID string, applicationID int32) (*domain.OrganizerApplication, error) {
	admin, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	app.ReviewedAt = &now
	app.ReviewedBy = &admin.UserID
	app.ReviewReason = ""

	profile := &domain.OrganizerProfile{
		UserID:           app.UserID,
		OrganizationName: app.OrganizationName,
		OrganizerType:    app.OrganizerType,
		Phone:            app.Phone,
		CardImageURL:     app.CardImageURL,
		VerifiedAt:       now,
		IsActive:         true,
	}

	if err := s.applicationRepo.Approve(ctx, app, profile); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, "approve_organizer", "organizer_application",
		fmt.Sprintf("%d", applicationID), app.OrganizationName)
	_ = s.emailSvc.SendOrganizerStatusNotification(ctx, app.Email, app.OrganizationName, "verified", "")

	return app, nil
}

func (s *onboardingService) Reject(ctx context.Context, actorID string, applicationID int32, reason string) (*domain.OrganizerApplication, error) {
	admin, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(reason)) < minReviewReasonLength {
		return nil, domain.ErrValidation(fmt.Sprintf("a rejection reason of at least %d characters is required", minReviewReasonLength))
	}

	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	app.ReviewedAt = &now
	app.ReviewedBy = &admin.UserID
	app.ReviewReason = reason

	if err := s.applicationRepo.Reject(ctx, app); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, "reject_organizer", "organizer_application",
		fmt.Sprintf("%d", applicationID), reason)
	_ = s.emailSvc.SendOrganizerStatusNotification(ctx, app.Email, app.OrganizationName, "rejected", reason)

	return app, nil
}

func (s *onboardingService) Suspend(ctx context.Context, actorID string, applicationID int32, reason string) (*domain.OrganizerApplication, error) {
	admin, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(reason)) < minReviewReasonLength {
		return nil, domain.ErrValidation(fmt.Sprintf("a suspension reason of at least %d characters is required", minReviewReasonLength))
	}

	app, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	app.ReviewedAt = &now
	app.ReviewedBy = &admin.UserID
	app.ReviewReason = reason

	if err := s.applicationRepo.Suspend(ctx, app); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, actorID, "suspend_organizer", "organizer_application",
		fmt.Sprintf("%d", applicationID), reason)
	_ = s.emailSvc.SendOrganizerStatusNotification(ctx, app.Email, app.OrganizationName, "suspended", reason)

	return app, nil
}

func (s *onboardingService) Stats(ctx context.Context, actorID string) (*OnboardingStats, error) {
	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	stats := &OnboardingStats{}
	counts := []struct {
		status domain.OrganizerApplicationStatus
		dest   *int32
	}{
		{domain.OrganizerApplicationStatusPending, &stats.PendingApplications},
		{domain.OrganizerApplicationStatusVerified, &stats.VerifiedApplications},
		{domain.OrganizerApplicationStatusRejected, &stats.RejectedApplications},
		{domain.OrganizerApplicationStatusSuspended, &stats.SuspendedApplications},
	}
	for _, c := range counts {
		n, err := s.applicationRepo.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	organizers, err := s.accountRepo.CountByRole(ctx, domain.RoleOrganizer)
	if err != nil {
		return nil, err
	}
	stats.TotalOrganizers = organizers

	users, err := s.accountRepo.CountByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	stats.TotalUsers = users

	return stats, nil
}
