package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/security"
	"volunteerhub-backend/internal/service"
)

const organizerID = "5f4c3b2a-1e0d-4c9b-8a77-4a9d6e444444"

func organizerAccount() *domain.Account {
	return &domain.Account{UserID: organizerID, Email: "org@volunteerhub.org", Role: domain.RoleOrganizer, Status: domain.AccountStatusActive}
}

func publicPosting(id int32, orgProfileID int32) *domain.Posting {
	return &domain.Posting{
		ID:          id,
		OrganizerID: &orgProfileID,
		Title:       "River Cleanup",
		Visibility:  domain.VisibilityPublic,
		Status:      domain.PostingStatusActive,
	}
}

func privatePosting(id int32, orgProfileID int32, key string) *domain.Posting {
	p := publicPosting(id, orgProfileID)
	p.Visibility = domain.VisibilityPrivate
	p.AccessKeyHash = security.HashSecret(key)
	return p
}

func volunteerApplication() *domain.Application {
	return &domain.Application{
		PostingID:    3,
		Name:         "Dana Reyes",
		Skills:       "first aid, logistics",
		Availability: "weekends",
		Email:        "dana@example.org",
		PhoneNumber:  "555-0199",
		Sex:          domain.GenderFemale,
	}
}

func newApplicationService(appRepo *MockApplicationRepo, postingRepo *MockPostingRepo,
	profileRepo *MockOrganizerProfileRepo, acctRepo *MockAccountRepo, emailSvc *MockEmailService) service.ApplicationService {
	return service.NewApplicationService(appRepo, postingRepo, profileRepo, acctRepo, emailSvc)
}

func TestApplicationService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("PublicPosting", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		postingRepo := new(MockPostingRepo)
		acctRepo := new(MockAccountRepo)
		svc := newApplicationService(appRepo, postingRepo, nil, acctRepo, nil)

		acctRepo.On("GetByID", ctx, applicantID).Return(userAccount(applicantID), nil).Once()
		postingRepo.On("GetByID", ctx, int32(3)).Return(publicPosting(3, 11), nil).Once()
		appRepo.On("GetActiveByPostingAndUser", ctx, int32(3), applicantID).
			Return(nil, domain.ErrNotFound("application", applicantID)).Once()
		appRepo.On("Create", ctx, mock.MatchedBy(func(a *domain.Application) bool {
			return a.UserID == applicantID && a.Status == domain.ApplicationStatusPending
		})).Return(nil).Once()

		created, err := svc.Submit(ctx, applicantID, volunteerApplication(), "")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusPending, created.Status)
		appRepo.AssertExpectations(t)
	})

	t.Run("PrivatePostingWithoutKey", func(t *testing.T) {
		postingRepo := new(MockPostingRepo)
		acctRepo := new(MockAccountRepo)
		svc := newApplicationService(new(MockApplicationRepo), postingRepo, nil, acctRepo, nil)

		acctRepo.On("GetByID", ctx, applicantID).Return(userAccount(applicantID), nil).Once()
		postingRepo.On("GetByID", ctx, int32(3)).Return(privatePosting(3, 11, "orchard-2024"), nil).Once()

		_, err := svc.Submit(ctx, applicantID, volunteerApplication(), "")
		assert.True(t, domain.IsKind(err, domain.KindPrivateKeyRequired))
	})

	t.Run("PrivatePostingWrongKey", func(t *testing.T) {
		postingRepo := new(MockPostingRepo)
		acctRepo := new(MockAccountRepo)
		svc := newApplicationService(new(MockApplicationRepo), postingRepo, nil, acctRepo, nil)

		acctRepo.On("GetByID", ctx, applicantID).Return(userAccount(applicantID), nil).Once()
		postingRepo.On("GetByID", ctx, int32(3)).Return(privatePosting(3, 11, "orchard-2024"), nil).Once()

		_, err := svc.Submit(ctx, applicantID, volunteerApplication(), "guessed-key")
		assert.True(t, domain.IsKind(err, domain.KindPrivateKeyInvalid))
	})

	t.Run("PrivatePostingCorrectKey", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		postingRepo := new(MockPostingRepo)
		acctRepo := new(MockAccountRepo)
		svc := newApplicationService(appRepo, postingRepo, nil, acctRepo, nil)

		acctRepo.On("GetByID", ctx, applicantID).Return(userAccount(applicantID), nil).Once()
		postingRepo.On("GetByID", ctx, int32(3)).Return(privatePosting(3, 11, "orchard-2024"), nil).Once()
		appRepo.On("GetActiveByPostingAndUser", ctx, int32(3), applicantID).
			Return(nil, domain.ErrNotFound("application", applicantID)).Once()
		appRepo.On("Create", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.Submit(ctx, applicantID, volunteerApplication(), "orchard-2024")
		assert.NoError(t, err)
	})

	t.Run("DuplicateActiveApplication", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		postingRepo := new(MockPostingRepo)
		acctRepo := new(MockAccountRepo)
		svc := newApplicationService(appRepo, postingRepo, nil, acctRepo, nil)

		pending := volunteerApplication()
		pending.ID = 21
		pending.UserID = applicantID
		pending.Status = domain.ApplicationStatusPending
		acctRepo.On("GetByID", ctx, applicantID).Return(userAccount(applicantID), nil).Once()
		postingRepo.On("GetByID", ctx, int32(3)).Return(publicPosting(3, 11), nil).Once()
		appRepo.On("GetActiveByPostingAndUser", ctx, int32(3), applicantID).Return(pending, nil).Once()

		_, err := svc.Submit(ctx, applicantID, volunteerApplication(), "")
		assert.True(t, domain.IsKind(err, domain.KindDuplicateApplication))
		appRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RacingDuplicateLandsOnConstraint", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		postingRepo := new(MockPostingRepo)
		acctRepo := new(MockAccountRepo)
		svc := newApplicationService(appRepo, postingRepo, nil, acctRepo, nil)

		acctRepo.On("GetByID", ctx, applicantID).Return(userAccount(applicantID), nil).Once()
		postingRepo.On("GetByID", ctx, int32(3)).Return(publicPosting(3, 11), nil).Once()
		appRepo.On("GetActiveByPostingAndUser", ctx, int32(3), applicantID).
			Return(nil, domain.ErrNotFound("application", applicantID)).Once()
		appRepo.On("Create", ctx, mock.Anything).
			Return(domain.ErrDuplicateApplication("application", "an active application for this posting already exists")).Once()

		_, err := svc.Submit(ctx, applicantID, volunteerApplication(), "")
		assert.True(t, domain.IsKind(err, domain.KindDuplicateApplication))
	})

	t.Run("MissingPosting", func(t *testing.T) {
		postingRepo := new(MockPostingRepo)
		acctRepo := new(MockAccountRepo)
		svc := newApplicationService(new(MockApplicationRepo), postingRepo, nil, acctRepo, nil)

		acctRepo.On("GetByID", ctx, applicantID).Return(userAccount(applicantID), nil).Once()
		postingRepo.On("GetByID", ctx, int32(3)).Return(nil, domain.ErrNotFound("posting", "3")).Once()

		_, err := svc.Submit(ctx, applicantID, volunteerApplication(), "")
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})
}

func TestApplicationService_Decide(t *testing.T) {
	ctx := context.Background()

	pendingApp := func() *domain.Application {
		a := volunteerApplication()
		a.ID = 21
		a.UserID = applicantID
		a.Status = domain.ApplicationStatusPending
		return a
	}

	t.Run("OwnerApproves", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		postingRepo := new(MockPostingRepo)
		profileRepo := new(MockOrganizerProfileRepo)
		acctRepo := new(MockAccountRepo)
		emailSvc := new(MockEmailService)
		svc := newApplicationService(appRepo, postingRepo, profileRepo, acctRepo, emailSvc)

		acctRepo.On("GetByID", ctx, organizerID).Return(organizerAccount(), nil).Once()
		appRepo.On("GetByID", ctx, int32(21)).Return(pendingApp(), nil).Once()
		postingRepo.On("GetByID", ctx, int32(3)).Return(publicPosting(3, 11), nil).Once()
		profileRepo.On("GetByUserID", ctx, organizerID).Return(&domain.OrganizerProfile{ID: 11, UserID: organizerID}, nil).Once()
		appRepo.On("Decide", ctx, int32(21), domain.ApplicationStatusApproved, organizerID, mock.Anything).Return(nil).Once()
		emailSvc.On("SendApplicationStatusNotification", ctx, "dana@example.org", "Dana Reyes", "River Cleanup", "approved").Return(nil).Once()

		decided, err := svc.Decide(ctx, organizerID, 21, domain.ApplicationStatusApproved)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusApproved, decided.Status)
		assert.NotNil(t, decided.DecidedBy)
		appRepo.AssertExpectations(t)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		postingRepo := new(MockPostingRepo)
		profileRepo := new(MockOrganizerProfileRepo)
		acctRepo := new(MockAccountRepo)
		svc := newApplicationService(appRepo, postingRepo, profileRepo, acctRepo, nil)

		otherOrganizer := organizerAccount()
		acctRepo.On("GetByID", ctx, organizerID).Return(otherOrganizer, nil).Once()
		appRepo.On("GetByID", ctx, int32(21)).Return(pendingApp(), nil).Once()
		postingRepo.On("GetByID", ctx, int32(3)).Return(publicPosting(3, 11), nil).Once()
		profileRepo.On("GetByUserID", ctx, organizerID).Return(&domain.OrganizerProfile{ID: 99, UserID: organizerID}, nil).Once()

		_, err := svc.Decide(ctx, organizerID, 21, domain.ApplicationStatusApproved)
		assert.True(t, domain.IsKind(err, domain.KindForbidden))
	})

	t.Run("AdminMayDecideAnyPosting", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		postingRepo := new(MockPostingRepo)
		acctRepo := new(MockAccountRepo)
		emailSvc := new(MockEmailService)
		svc := newApplicationService(appRepo, postingRepo, nil, acctRepo, emailSvc)

		acctRepo.On("GetByID", ctx, adminID).Return(adminAccount(), nil).Once()
		appRepo.On("GetByID", ctx, int32(21)).Return(pendingApp(), nil).Once()
		postingRepo.On("GetByID", ctx, int32(3)).Return(publicPosting(3, 11), nil).Once()
		appRepo.On("Decide", ctx, int32(21), domain.ApplicationStatusRejected, adminID, mock.Anything).Return(nil).Once()
		emailSvc.On("SendApplicationStatusNotification", ctx, mock.Anything, mock.Anything, mock.Anything, "rejected").Return(nil).Once()

		_, err := svc.Decide(ctx, adminID, 21, domain.ApplicationStatusRejected)
		assert.NoError(t, err)
	})

	t.Run("WithdrawnIsNotADecision", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		acctRepo := new(MockAccountRepo)
		svc := newApplicationService(appRepo, new(MockPostingRepo), nil, acctRepo, nil)

		acctRepo.On("GetByID", ctx, organizerID).Return(organizerAccount(), nil).Once()
		appRepo.On("GetByID", ctx, int32(21)).Return(pendingApp(), nil).Once()

		_, err := svc.Decide(ctx, organizerID, 21, domain.ApplicationStatusWithdrawn)
		assert.True(t, domain.IsKind(err, domain.KindInvalidTransition))
	})

	t.Run("AlreadyDecidedConflicts", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		postingRepo := new(MockPostingRepo)
		profileRepo := new(MockOrganizerProfileRepo)
		acctRepo := new(MockAccountRepo)
		svc := newApplicationService(appRepo, postingRepo, profileRepo, acctRepo, nil)

		approved := pendingApp()
		approved.Status = domain.ApplicationStatusApproved
		acctRepo.On("GetByID", ctx, organizerID).Return(organizerAccount(), nil).Once()
		appRepo.On("GetByID", ctx, int32(21)).Return(approved, nil).Once()
		postingRepo.On("GetByID", ctx, int32(3)).Return(publicPosting(3, 11), nil).Once()
		profileRepo.On("GetByUserID", ctx, organizerID).Return(&domain.OrganizerProfile{ID: 11, UserID: organizerID}, nil).Once()
		appRepo.On("Decide", ctx, int32(21), domain.ApplicationStatusApproved, organizerID, mock.Anything).
			Return(domain.ErrInvalidTransition("application", "21", "approved")).Once()

		_, err := svc.Decide(ctx, organizerID, 21, domain.ApplicationStatusApproved)
		assert.True(t, domain.IsKind(err, domain.KindInvalidTransition))
	})
}

func TestApplicationService_Withdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("ApplicantWithdraws", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := newApplicationService(appRepo, new(MockPostingRepo), nil, new(MockAccountRepo), nil)

		app := volunteerApplication()
		app.ID = 21
		app.UserID = applicantID
		app.Status = domain.ApplicationStatusApproved
		appRepo.On("GetByID", ctx, int32(21)).Return(app, nil).Once()
		appRepo.On("Withdraw", ctx, int32(21)).Return(nil).Once()

		withdrawn, err := svc.Withdraw(ctx, applicantID, 21)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusWithdrawn, withdrawn.Status)
	})

	t.Run("OnlyApplicantMayWithdraw", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := newApplicationService(appRepo, new(MockPostingRepo), nil, new(MockAccountRepo), nil)

		app := volunteerApplication()
		app.ID = 21
		app.UserID = applicantID
		appRepo.On("GetByID", ctx, int32(21)).Return(app, nil).Once()

		_, err := svc.Withdraw(ctx, bystanderID, 21)
		assert.True(t, domain.IsKind(err, domain.KindForbidden))
	})

	t.Run("RejectedCannotBeWithdrawn", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		svc := newApplicationService(appRepo, new(MockPostingRepo), nil, new(MockAccountRepo), nil)

		app := volunteerApplication()
		app.ID = 21
		app.UserID = applicantID
		app.Status = domain.ApplicationStatusRejected
		appRepo.On("GetByID", ctx, int32(21)).Return(app, nil).Once()
		appRepo.On("Withdraw", ctx, int32(21)).
			Return(domain.ErrInvalidTransition("application", "21", "rejected")).Once()

		_, err := svc.Withdraw(ctx, applicantID, 21)
		assert.True(t, domain.IsKind(err, domain.KindInvalidTransition))
	})
}
