package service

import (
	"context"
	"fmt"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/logger"
	"volunteerhub-backend/internal/repository"
	"volunteerhub-backend/internal/security"
)

type accountService struct {
	accountRepo repository.AccountRepository
	auditSvc    AuditService
}

func NewAccountService(accountRepo repository.AccountRepository, auditSvc AuditService) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		auditSvc:    auditSvc,
	}
}

// GetOrProvision implements creation-on-first-access. Two racing first
// requests both attempt the insert; at most one row lands and the re-read
// returns it to both callers.
func (s *accountService) GetOrProvision(ctx context.Context, ident *security.Identity) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, ident.UserID)
	if err == nil {
		return account, nil
	}
	if !domain.IsKind(err, domain.KindNotFound) {
		return nil, err
	}

	fresh := &domain.Account{
		UserID: ident.UserID,
		Email:  ident.Email,
		Role:   domain.RoleUser,
		Status: domain.AccountStatusActive,
	}
	if err := s.accountRepo.CreateIfAbsent(ctx, fresh); err != nil {
		return nil, err
	}
	logger.Get().Info("provisioned account on first access", "user_id", ident.UserID)
	return s.accountRepo.GetByID(ctx, ident.UserID)
}

func (s *accountService) UpdateProfile(ctx context.Context, userID, firstName, lastName, phone string) (*domain.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	account.FirstName = firstName
	account.LastName = lastName
	account.Phone = phone
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, actorID, role, search string, page, pageSize int32) ([]domain.Account, int32, error) {
	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdmin); err != nil {
		return nil, 0, err
	}
	if role != "" && !domain.ValidRole(domain.Role(role)) {
		return nil, 0, domain.ErrValidation(fmt.Sprintf("unknown role filter %q", role))
	}
	return s.accountRepo.List(ctx, role, search, page, pageSize)
}

func (s *accountService) ChangeRole(ctx context.Context, actorID, targetID string, role domain.Role) error {
	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdmin); err != nil {
		return err
	}
	if !domain.ValidRole(role) {
		return domain.ErrValidation(fmt.Sprintf("unknown role %q", role))
	}
	target, err := s.accountRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if err := s.accountRepo.SetRoleAndStatus(ctx, targetID, role, target.Status); err != nil {
		return err
	}
	s.auditSvc.Record(ctx, actorID, "change_role", "account", targetID,
		fmt.Sprintf("%s -> %s", target.Role, role))
	return nil
}

// Deactivate soft-disables an account. Rows are never deleted so audit
// references stay resolvable.
func (s *accountService) Deactivate(ctx context.Context, actorID, targetID string) error {
	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdmin); err != nil {
		return err
	}
	if actorID == targetID {
		return domain.ErrValidation("admins cannot deactivate their own account")
	}
	target, err := s.accountRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if err := s.accountRepo.SetRoleAndStatus(ctx, targetID, target.Role, domain.AccountStatusInactive); err != nil {
		return err
	}
	s.auditSvc.Record(ctx, actorID, "deactivate_account", "account", targetID, "")
	return nil
}
