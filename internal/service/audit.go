package service

import (
	"context"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/logger"
	"volunteerhub-backend/internal/repository"
)

type auditService struct {
	auditRepo   repository.AuditRepository
	accountRepo repository.AccountRepository
}

func NewAuditService(auditRepo repository.AuditRepository, accountRepo repository.AccountRepository) AuditService {
	return &auditService{
		auditRepo:   auditRepo,
		accountRepo: accountRepo,
	}
}

// Record appends after the business transition has committed. A sink
// failure is logged with full context and otherwise ignored.
func (s *auditService) Record(ctx context.Context, actorID, action, targetType, targetID, detail string) {
	entry := &domain.AuditEntry{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Detail:     detail,
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		logger.Get().Error("audit sink write failed",
			"actor_id", actorID, "action", action, "target_type", targetType,
			"target_id", targetID, "error", err)
	}
}

func (s *auditService) List(ctx context.Context, actorID string, limit int32) ([]domain.AuditEntry, error) {
	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.auditRepo.List(ctx, limit)
}
