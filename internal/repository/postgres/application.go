package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/repository"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, posting_id, user_id, name, skills, availability, email, phone_number,
	sex, COALESCE(message, ''), COALESCE(cv_url, ''), status, decided_by, decided_at, created_at, updated_at`

func scanApplication(row interface{ Scan(...interface{}) error }) (*domain.Application, error) {
	a := &domain.Application{}
	err := row.Scan(&a.ID, &a.PostingID, &a.UserID, &a.Name, &a.Skills, &a.Availability,
		&a.Email, &a.PhoneNumber, &a.Sex, &a.Message, &a.CVURL, &a.Status,
		&a.DecidedBy, &a.DecidedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create relies on the partial unique index over non-withdrawn
// (posting_id, user_id) rows. Two racing submissions both reach the insert
// and exactly one wins; the loser surfaces as DuplicateApplication.
func (r *applicationRepository) Create(ctx context.Context, a *domain.Application) error {
	query := `INSERT INTO applications
	          (posting_id, user_id, name, skills, availability, email, phone_number, sex,
	           message, cv_url, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13)
	          RETURNING id`
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query,
		a.PostingID, a.UserID, a.Name, a.Skills, a.Availability, a.Email, a.PhoneNumber,
		a.Sex, a.Message, a.CVURL, a.Status, a.CreatedAt, a.UpdatedAt).Scan(&a.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateApplication("application", "an active application for this posting already exists")
	}
	return err
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`
	a, err := scanApplication(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("application", fmt.Sprintf("%d", id))
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *applicationRepository) GetActiveByPostingAndUser(ctx context.Context, postingID int32, userID string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications
	          WHERE posting_id = $1 AND user_id = $2 AND status != 'withdrawn'`
	a, err := scanApplication(r.db.QueryRowContext(ctx, query, postingID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("application", userID)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *applicationRepository) Decide(ctx context.Context, id int32, to domain.ApplicationStatus, decidedBy string, decidedAt time.Time) error {
	query := `UPDATE applications
	          SET status=$1, decided_by=$2, decided_at=$3, updated_at=$3
	          WHERE id=$4 AND status='pending'`
	res, err := r.db.ExecContext(ctx, query, to, decidedBy, decidedAt, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return r.transitionConflict(ctx, id)
	}
	return nil
}

func (r *applicationRepository) Withdraw(ctx context.Context, id int32) error {
	query := `UPDATE applications
	          SET status='withdrawn', updated_at=$1
	          WHERE id=$2 AND status IN ('pending', 'approved')`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return r.transitionConflict(ctx, id)
	}
	return nil
}

// transitionConflict distinguishes a missing row from a guard miss after a
// zero-row update.
func (r *applicationRepository) transitionConflict(ctx context.Context, id int32) error {
	var current string
	err := r.db.QueryRowContext(ctx, `SELECT status FROM applications WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound("application", fmt.Sprintf("%d", id))
	}
	if err != nil {
		return err
	}
	return domain.ErrInvalidTransition("application", fmt.Sprintf("%d", id), current)
}

func (r *applicationRepository) ListByUser(ctx context.Context, userID, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE user_id = $1`
	args := []interface{}{userID}
	return r.list(ctx, query, args, "", status, page, pageSize)
}

func (r *applicationRepository) ListByPosting(ctx context.Context, postingID int32, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE posting_id = $1`
	args := []interface{}{postingID}
	return r.list(ctx, query, args, "", status, page, pageSize)
}

func (r *applicationRepository) ListByOrganizer(ctx context.Context, organizerID int32, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	query := `SELECT ` + qualifiedApplicationColumns + ` FROM applications a
	          JOIN postings p ON p.id = a.posting_id
	          WHERE p.organizer_id = $1`
	args := []interface{}{organizerID}
	return r.list(ctx, query, args, "a.", status, page, pageSize)
}

const qualifiedApplicationColumns = `a.id, a.posting_id, a.user_id, a.name, a.skills, a.availability,
	a.email, a.phone_number, a.sex, COALESCE(a.message, ''), COALESCE(a.cv_url, ''), a.status,
	a.decided_by, a.decided_at, a.created_at, a.updated_at`

// list shares the filter/count/page tail between the application listings.
// colPrefix qualifies the status and ordering columns when the base query
// joins postings, whose columns would otherwise be ambiguous.
func (r *applicationRepository) list(ctx context.Context, query string, args []interface{}, colPrefix, status string, page, pageSize int32) ([]domain.Application, int32, error) {
	offset := (page - 1) * pageSize
	argIdx := len(args) + 1
	if status != "" {
		query += fmt.Sprintf(" AND %sstatus = $%d", colPrefix, argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY %screated_at DESC LIMIT $%d OFFSET $%d", colPrefix, argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, *a)
	}
	return apps, count, rows.Err()
}

func (r *applicationRepository) Stats(ctx context.Context, postingID int32) (*domain.ApplicationStats, error) {
	query := `SELECT
	            count(*),
	            count(*) FILTER (WHERE status = 'pending'),
	            count(*) FILTER (WHERE status = 'approved'),
	            count(*) FILTER (WHERE status = 'rejected'),
	            count(*) FILTER (WHERE status = 'withdrawn')
	          FROM applications WHERE posting_id = $1`
	stats := &domain.ApplicationStats{PostingID: postingID}
	err := r.db.QueryRowContext(ctx, query, postingID).Scan(
		&stats.Total, &stats.PendingCount, &stats.ApprovedCount, &stats.RejectedCount, &stats.WithdrawnCount)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
