package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"volunteerhub-backend/internal/domain"
)

// MockAccountRepo
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) GetByID(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepo) CreateIfAbsent(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepo) Update(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}
func (m *MockAccountRepo) SetRoleAndStatus(ctx context.Context, userID string, role domain.Role, status domain.AccountStatus) error {
	args := m.Called(ctx, userID, role, status)
	return args.Error(0)
}
func (m *MockAccountRepo) List(ctx context.Context, role, search string, page, pageSize int32) ([]domain.Account, int32, error) {
	args := m.Called(ctx, role, search, page, pageSize)
	return args.Get(0).([]domain.Account), args.Get(1).(int32), args.Error(2)
}
func (m *MockAccountRepo) ListAdminEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}
func (m *MockAccountRepo) CountByRole(ctx context.Context, role domain.Role) (int32, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int32), args.Error(1)
}

// MockOrganizerApplicationRepo
type MockOrganizerApplicationRepo struct {
	mock.Mock
}

func (m *MockOrganizerApplicationRepo) Create(ctx context.Context, app *domain.OrganizerApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockOrganizerApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.OrganizerApplication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizerApplication), args.Error(1)
}
func (m *MockOrganizerApplicationRepo) GetByUserID(ctx context.Context, userID string) (*domain.OrganizerApplication, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizerApplication), args.Error(1)
}
func (m *MockOrganizerApplicationRepo) DeleteRejectedByUserID(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockOrganizerApplicationRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.OrganizerApplication, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.OrganizerApplication), args.Get(1).(int32), args.Error(2)
}
func (m *MockOrganizerApplicationRepo) CountByStatus(ctx context.Context, status domain.OrganizerApplicationStatus) (int32, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockOrganizerApplicationRepo) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int32, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockOrganizerApplicationRepo) Approve(ctx context.Context, app *domain.OrganizerApplication, profile *domain.OrganizerProfile) error {
	args := m.Called(ctx, app, profile)
	return args.Error(0)
}
func (m *MockOrganizerApplicationRepo) Reject(ctx context.Context, app *domain.OrganizerApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockOrganizerApplicationRepo) Suspend(ctx context.Context, app *domain.OrganizerApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

// MockOrganizerProfileRepo
type MockOrganizerProfileRepo struct {
	mock.Mock
}

func (m *MockOrganizerProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.OrganizerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrganizerProfile), args.Error(1)
}

// MockPostingRepo
type MockPostingRepo struct {
	mock.Mock
}

func (m *MockPostingRepo) Create(ctx context.Context, posting *domain.Posting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}
func (m *MockPostingRepo) GetByID(ctx context.Context, id int32) (*domain.Posting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Posting), args.Error(1)
}
func (m *MockPostingRepo) Update(ctx context.Context, posting *domain.Posting) error {
	args := m.Called(ctx, posting)
	return args.Error(0)
}
func (m *MockPostingRepo) List(ctx context.Context, visibility string, page, pageSize int32) ([]domain.Posting, int32, error) {
	args := m.Called(ctx, visibility, page, pageSize)
	return args.Get(0).([]domain.Posting), args.Get(1).(int32), args.Error(2)
}
func (m *MockPostingRepo) ListByOrganizer(ctx context.Context, organizerID int32, page, pageSize int32) ([]domain.Posting, int32, error) {
	args := m.Called(ctx, organizerID, page, pageSize)
	return args.Get(0).([]domain.Posting), args.Get(1).(int32), args.Error(2)
}

// MockApplicationRepo
type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetActiveByPostingAndUser(ctx context.Context, postingID int32, userID string) (*domain.Application, error) {
	args := m.Called(ctx, postingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) Decide(ctx context.Context, id int32, to domain.ApplicationStatus, decidedBy string, decidedAt time.Time) error {
	args := m.Called(ctx, id, to, decidedBy, decidedAt)
	return args.Error(0)
}
func (m *MockApplicationRepo) Withdraw(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockApplicationRepo) ListByUser(ctx context.Context, userID, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	args := m.Called(ctx, userID, status, page, pageSize)
	return args.Get(0).([]domain.Application), args.Get(1).(int32), args.Error(2)
}
func (m *MockApplicationRepo) ListByPosting(ctx context.Context, postingID int32, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	args := m.Called(ctx, postingID, status, page, pageSize)
	return args.Get(0).([]domain.Application), args.Get(1).(int32), args.Error(2)
}
func (m *MockApplicationRepo) ListByOrganizer(ctx context.Context, organizerID int32, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	args := m.Called(ctx, organizerID, status, page, pageSize)
	return args.Get(0).([]domain.Application), args.Get(1).(int32), args.Error(2)
}
func (m *MockApplicationRepo) Stats(ctx context.Context, postingID int32) (*domain.ApplicationStats, error) {
	args := m.Called(ctx, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicationStats), args.Error(1)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditRepo) List(ctx context.Context, limit int32) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// MockAuditService
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, actorID, action, targetType, targetID, detail string) {
	m.Called(ctx, actorID, action, targetType, targetID, detail)
}
func (m *MockAuditService) List(ctx context.Context, actorID string, limit int32) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, actorID, limit)
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendOrganizerStatusNotification(ctx context.Context, email, organizationName, status, reason string) error {
	args := m.Called(ctx, email, organizationName, status, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendApplicationStatusNotification(ctx context.Context, email, name, postingTitle, status string) error {
	args := m.Called(ctx, email, name, postingTitle, status)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminNotification(ctx context.Context, email, subject, message string) error {
	args := m.Called(ctx, email, subject, message)
	return args.Error(0)
}
