package postgres

import (
	"database/sql"
	"errors"

	"volunteerhub-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.AccountRepository
	repository.OrganizerApplicationRepository
	repository.OrganizerProfileRepository
	repository.PostingRepository
	repository.ApplicationRepository
	repository.AuditRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                             db,
		AccountRepository:              NewAccountRepository(db),
		OrganizerApplicationRepository: NewOrganizerApplicationRepository(db),
		OrganizerProfileRepository:     NewOrganizerProfileRepository(db),
		PostingRepository:              NewPostingRepository(db),
		ApplicationRepository:          NewApplicationRepository(db),
		AuditRepository:                NewAuditRepository(db),
	}
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. Uniqueness invariants (one active organizer application per
// account, one non-withdrawn application per posting+applicant) live in
// partial unique indexes, so the losing insert of a race lands here.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
