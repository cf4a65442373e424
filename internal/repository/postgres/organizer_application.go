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

type organizerApplicationRepository struct {
	db *sql.DB
}

func NewOrganizerApplicationRepository(db *sql.DB) repository.OrganizerApplicationRepository {
	return &organizerApplicationRepository{db: db}
}

const organizerApplicationColumns = `id, user_id, organization_name, email, phone, organizer_type,
	COALESCE(card_image_url, ''), status, submitted_at, reviewed_at, reviewed_by, COALESCE(review_reason, '')`

func scanOrganizerApplication(row interface{ Scan(...interface{}) error }) (*domain.OrganizerApplication, error) {
	app := &domain.OrganizerApplication{}
	err := row.Scan(&app.ID, &app.UserID, &app.OrganizationName, &app.Email, &app.Phone,
		&app.OrganizerType, &app.CardImageURL, &app.Status, &app.SubmittedAt,
		&app.ReviewedAt, &app.ReviewedBy, &app.ReviewReason)
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *organizerApplicationRepository) Create(ctx context.Context, app *domain.OrganizerApplication) error {
	query := `INSERT INTO organizer_applications
	          (user_id, organization_name, email, phone, organizer_type, card_image_url, status, submitted_at)
	          VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)
	          RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		app.UserID, app.OrganizationName, app.Email, app.Phone, app.OrganizerType,
		app.CardImageURL, app.Status, app.SubmittedAt).Scan(&app.ID)
	if isUniqueViolation(err) {
		return domain.ErrDuplicateApplication("organizer_application", "an organizer application is already on file for this account")
	}
	return err
}

func (r *organizerApplicationRepository) GetByID(ctx context.Context, id int32) (*domain.OrganizerApplication, error) {
	query := `SELECT ` + organizerApplicationColumns + ` FROM organizer_applications WHERE id = $1`
	app, err := scanOrganizerApplication(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("organizer application", fmt.Sprintf("%d", id))
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *organizerApplicationRepository) GetByUserID(ctx context.Context, userID string) (*domain.OrganizerApplication, error) {
	query := `SELECT ` + organizerApplicationColumns + ` FROM organizer_applications
	          WHERE user_id = $1 ORDER BY submitted_at DESC LIMIT 1`
	app, err := scanOrganizerApplication(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("organizer application", userID)
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (r *organizerApplicationRepository) DeleteRejectedByUserID(ctx context.Context, userID string) error {
	query := `DELETE FROM organizer_applications WHERE user_id = $1 AND status = 'rejected'`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *organizerApplicationRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.OrganizerApplication, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + organizerApplicationColumns + ` FROM organizer_applications WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY submitted_at ASC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var apps []domain.OrganizerApplication
	for rows.Next() {
		app, err := scanOrganizerApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		apps = append(apps, *app)
	}
	return apps, count, rows.Err()
}

func (r *organizerApplicationRepository) CountByStatus(ctx context.Context, status domain.OrganizerApplicationStatus) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM organizer_applications WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *organizerApplicationRepository) CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM organizer_applications WHERE status = 'pending' AND submitted_at < $1`,
		cutoff).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// transition performs the guarded status swap on the application row within
// tx. When the guard misses it re-reads the row outside the update to report
// either NotFound or InvalidTransition with the status actually present.
func (r *organizerApplicationRepository) transition(ctx context.Context, tx *sql.Tx, app *domain.OrganizerApplication, to domain.OrganizerApplicationStatus) error {
	query := `UPDATE organizer_applications
	          SET status=$1, reviewed_at=$2, reviewed_by=$3, review_reason=NULLIF($4, '')
	          WHERE id=$5 AND status='pending'`
	res, err := tx.ExecContext(ctx, query, to, app.ReviewedAt, app.ReviewedBy, app.ReviewReason, app.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT status FROM organizer_applications WHERE id = $1`, app.ID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound("organizer application", fmt.Sprintf("%d", app.ID))
		}
		if err != nil {
			return err
		}
		return domain.ErrInvalidTransition("organizer application", fmt.Sprintf("%d", app.ID), current)
	}
	app.Status = to
	return nil
}

// Approve commits the verified application, the organizer role grant and the
// profile upsert as one transaction. Either every effect lands or none does.
func (r *organizerApplicationRepository) Approve(ctx context.Context, app *domain.OrganizerApplication, profile *domain.OrganizerProfile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.transition(ctx, tx, app, domain.OrganizerApplicationStatusVerified); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE user_profiles SET role=$1, status=$2, updated_at=$3 WHERE user_id=$4`,
		domain.RoleOrganizer, domain.AccountStatusActive, time.Now().UTC(), app.UserID)
	if err != nil {
		return err
	}

	query := `INSERT INTO organizer_profiles
	          (user_id, organization_name, organizer_type, phone, card_image_url, verified_at, is_active)
	          VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, true)
	          ON CONFLICT (user_id) DO UPDATE SET
	            organization_name = EXCLUDED.organization_name,
	            organizer_type = EXCLUDED.organizer_type,
	            phone = EXCLUDED.phone,
	            card_image_url = EXCLUDED.card_image_url,
	            verified_at = EXCLUDED.verified_at,
	            is_active = true
	          RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		profile.UserID, profile.OrganizationName, profile.OrganizerType, profile.Phone,
		profile.CardImageURL, profile.VerifiedAt).Scan(&profile.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Reject marks the application rejected and moves the account to the
// rejected status in the same transaction.
func (r *organizerApplicationRepository) Reject(ctx context.Context, app *domain.OrganizerApplication) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := r.transition(ctx, tx, app, domain.OrganizerApplicationStatusRejected); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE user_profiles SET status=$1, updated_at=$2 WHERE user_id=$3`,
		domain.AccountStatusRejected, time.Now().UTC(), app.UserID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Suspend marks a verified application suspended, freezes the account and
// deactivates the organizer profile in one transaction. The guard here
// expects 'verified' rather than 'pending'.
func (r *organizerApplicationRepository) Suspend(ctx context.Context, app *domain.OrganizerApplication) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `UPDATE organizer_applications
	          SET status=$1, reviewed_at=$2, reviewed_by=$3, review_reason=NULLIF($4, '')
	          WHERE id=$5 AND status='verified'`
	res, err := tx.ExecContext(ctx, query,
		domain.OrganizerApplicationStatusSuspended, app.ReviewedAt, app.ReviewedBy, app.ReviewReason, app.ID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var current string
		err := tx.QueryRowContext(ctx, `SELECT status FROM organizer_applications WHERE id = $1`, app.ID).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound("organizer application", fmt.Sprintf("%d", app.ID))
		}
		if err != nil {
			return err
		}
		return domain.ErrInvalidTransition("organizer application", fmt.Sprintf("%d", app.ID), current)
	}
	app.Status = domain.OrganizerApplicationStatusSuspended

	_, err = tx.ExecContext(ctx,
		`UPDATE user_profiles SET status=$1, updated_at=$2 WHERE user_id=$3`,
		domain.AccountStatusSuspended, time.Now().UTC(), app.UserID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE organizer_profiles SET is_active=false WHERE user_id=$1`, app.UserID)
	if err != nil {
		return err
	}

	return tx.Commit()
}
