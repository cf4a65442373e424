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

type accountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = `user_id, email, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(phone, ''), role, status, created_at, updated_at`

func scanAccount(row interface{ Scan(...interface{}) error }) (*domain.Account, error) {
	a := &domain.Account{}
	err := row.Scan(&a.UserID, &a.Email, &a.FirstName, &a.LastName, &a.Phone, &a.Role, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *accountRepository) GetByID(ctx context.Context, userID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM user_profiles WHERE user_id = $1`
	a, err := scanAccount(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("account", userID)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *accountRepository) CreateIfAbsent(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO user_profiles (user_id, email, first_name, last_name, phone, role, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          ON CONFLICT (user_id) DO NOTHING`
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, query, a.UserID, a.Email, a.FirstName, a.LastName, a.Phone, a.Role, a.Status, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *accountRepository) Update(ctx context.Context, a *domain.Account) error {
	query := `UPDATE user_profiles SET email=$1, first_name=$2, last_name=$3, phone=$4, updated_at=$5 WHERE user_id=$6`
	a.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, a.Email, a.FirstName, a.LastName, a.Phone, a.UpdatedAt, a.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("account", a.UserID)
	}
	return nil
}

// SetRoleAndStatus writes both fields in one statement so concurrent readers
// never observe a mixed pair.
func (r *accountRepository) SetRoleAndStatus(ctx context.Context, userID string, role domain.Role, status domain.AccountStatus) error {
	query := `UPDATE user_profiles SET role=$1, status=$2, updated_at=$3 WHERE user_id=$4`
	res, err := r.db.ExecContext(ctx, query, role, status, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound("account", userID)
	}
	return nil
}

func (r *accountRepository) List(ctx context.Context, role, search string, page, pageSize int32) ([]domain.Account, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + accountColumns + ` FROM user_profiles WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if role != "" {
		query += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, role)
		argIdx++
	}
	if search != "" {
		query += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+search+"%")
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

	var accounts []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, count, rows.Err()
}

func (r *accountRepository) ListAdminEmails(ctx context.Context) ([]string, error) {
	query := `SELECT email FROM user_profiles WHERE role = 'admin' AND status = 'active'`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}

func (r *accountRepository) CountByRole(ctx context.Context, role domain.Role) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM user_profiles WHERE role = $1`, role).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
