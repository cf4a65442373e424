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

type postingRepository struct {
	db *sql.DB
}

func NewPostingRepository(db *sql.DB) repository.PostingRepository {
	return &postingRepository{db: db}
}

const postingColumns = `id, organizer_id, title, COALESCE(description, ''), COALESCE(location, ''),
	visibility, COALESCE(access_key_hash, ''), status, created_at, updated_at`

func scanPosting(row interface{ Scan(...interface{}) error }) (*domain.Posting, error) {
	p := &domain.Posting{}
	err := row.Scan(&p.ID, &p.OrganizerID, &p.Title, &p.Description, &p.Location,
		&p.Visibility, &p.AccessKeyHash, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postingRepository) Create(ctx context.Context, p *domain.Posting) error {
	query := `INSERT INTO postings
	          (organizer_id, title, description, location, visibility, access_key_hash, status, created_at, updated_at)
	          VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8, $9)
	          RETURNING id`
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query,
		p.OrganizerID, p.Title, p.Description, p.Location, p.Visibility,
		p.AccessKeyHash, p.Status, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
}

func (r *postingRepository) GetByID(ctx context.Context, id int32) (*domain.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings WHERE id = $1`
	p, err := scanPosting(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("posting", fmt.Sprintf("%d", id))
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postingRepository) Update(ctx context.Context, p *domain.Posting) error {
	query := `UPDATE postings
	          SET title=$1, description=NULLIF($2, ''), location=NULLIF($3, ''),
	              visibility=$4, access_key_hash=NULLIF($5, ''), status=$6, updated_at=$7
	          WHERE id=$8`
	p.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.Location, p.Visibility, p.AccessKeyHash, p.Status, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("posting", fmt.Sprintf("%d", p.ID))
	}
	return nil
}

func (r *postingRepository) List(ctx context.Context, visibility string, page, pageSize int32) ([]domain.Posting, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + postingColumns + ` FROM postings WHERE status = 'active'`

	args := []interface{}{}
	argIdx := 1
	if visibility != "" {
		query += fmt.Sprintf(" AND visibility = $%d", argIdx)
		args = append(args, visibility)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var postings []domain.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, 0, err
		}
		postings = append(postings, *p)
	}
	return postings, count, rows.Err()
}

func (r *postingRepository) ListByOrganizer(ctx context.Context, organizerID int32, page, pageSize int32) ([]domain.Posting, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM postings WHERE organizer_id = $1`, organizerID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + postingColumns + ` FROM postings
	          WHERE organizer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, organizerID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var postings []domain.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, 0, err
		}
		postings = append(postings, *p)
	}
	return postings, count, rows.Err()
}
