package postgres

import (
	"context"
	"database/sql"
	"errors"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/repository"
)

type organizerProfileRepository struct {
	db *sql.DB
}

func NewOrganizerProfileRepository(db *sql.DB) repository.OrganizerProfileRepository {
	return &organizerProfileRepository{db: db}
}

const organizerProfileColumns = `id, user_id, organization_name, organizer_type, phone,
	COALESCE(website, ''), COALESCE(address, ''), COALESCE(description, ''),
	COALESCE(contact_person, ''), COALESCE(registration_number, ''),
	COALESCE(card_image_url, ''), verified_at, is_active`

func scanOrganizerProfile(row interface{ Scan(...interface{}) error }) (*domain.OrganizerProfile, error) {
	p := &domain.OrganizerProfile{}
	err := row.Scan(&p.ID, &p.UserID, &p.OrganizationName, &p.OrganizerType, &p.Phone,
		&p.Website, &p.Address, &p.Description, &p.ContactPerson, &p.RegistrationNumber,
		&p.CardImageURL, &p.VerifiedAt, &p.IsActive)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *organizerProfileRepository) GetByUserID(ctx context.Context, userID string) (*domain.OrganizerProfile, error) {
	query := `SELECT ` + organizerProfileColumns + ` FROM organizer_profiles WHERE user_id = $1`
	p, err := scanOrganizerProfile(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound("organizer profile", userID)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
