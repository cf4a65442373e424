package postgres

import (
	"context"
	"database/sql"
	"time"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/repository"
)

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, e *domain.AuditEntry) error {
	query := `INSERT INTO admin_activity_log (actor_id, action, target_type, target_id, detail, created_at)
	          VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
	          RETURNING id`
	e.CreatedAt = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		e.ActorID, e.Action, e.TargetType, e.TargetID, e.Detail, e.CreatedAt).Scan(&e.ID)
}

func (r *auditRepository) List(ctx context.Context, limit int32) ([]domain.AuditEntry, error) {
	query := `SELECT id, actor_id, action, target_type, target_id, COALESCE(detail, ''), created_at
	          FROM admin_activity_log ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		err := rows.Scan(&e.ID, &e.ActorID, &e.Action, &e.TargetType, &e.TargetID, &e.Detail, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
