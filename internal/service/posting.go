package service

import (
	"context"
	"strings"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/repository"
	"volunteerhub-backend/internal/security"
)

type postingService struct {
	postingRepo repository.PostingRepository
	profileRepo repository.OrganizerProfileRepository
	accountRepo repository.AccountRepository
}

func NewPostingService(
	postingRepo repository.PostingRepository,
	profileRepo repository.OrganizerProfileRepository,
	accountRepo repository.AccountRepository,
) PostingService {
	return &postingService{
		postingRepo: postingRepo,
		profileRepo: profileRepo,
		accountRepo: accountRepo,
	}
}

// Create accepts the access key in plaintext exactly once, stores only its
// digest and returns the posting with the hash blanked.
func (s *postingService) Create(ctx context.Context, actorID string, posting *domain.Posting, accessKey string) (*domain.Posting, error) {
	actor, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleOrganizer)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(posting.Title) == "" {
		return nil, domain.ErrValidation("posting title is required")
	}
	switch posting.Visibility {
	case domain.VisibilityPublic, domain.VisibilityPrivate:
	default:
		return nil, domain.ErrValidation("visibility must be public or private")
	}

	if actor.Role == domain.RoleAdmin {
		posting.OrganizerID = nil
	} else {
		profile, err := s.profileRepo.GetByUserID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if !profile.IsActive {
			return nil, domain.ErrForbidden("organizer profile is suspended", domain.RoleOrganizer)
		}
		posting.OrganizerID = &profile.ID
	}

	if posting.IsPrivate() {
		if accessKey == "" {
			return nil, domain.ErrValidation("a private posting requires an access key")
		}
		posting.AccessKeyHash = security.HashSecret(accessKey)
	} else {
		posting.AccessKeyHash = ""
	}

	posting.Status = domain.PostingStatusActive
	if err := s.postingRepo.Create(ctx, posting); err != nil {
		return nil, err
	}
	posting.AccessKeyHash = ""
	return posting, nil
}

func (s *postingService) Update(ctx context.Context, actorID string, posting *domain.Posting, accessKey string) (*domain.Posting, error) {
	actor, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleOrganizer)
	if err != nil {
		return nil, err
	}

	current, err := s.postingRepo.GetByID(ctx, posting.ID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwnership(ctx, actor, current); err != nil {
		return nil, err
	}

	if strings.TrimSpace(posting.Title) == "" {
		return nil, domain.ErrValidation("posting title is required")
	}
	switch posting.Visibility {
	case domain.VisibilityPublic, domain.VisibilityPrivate:
	default:
		return nil, domain.ErrValidation("visibility must be public or private")
	}

	posting.OrganizerID = current.OrganizerID
	posting.CreatedAt = current.CreatedAt
	if posting.Status == "" {
		posting.Status = current.Status
	}

	switch {
	case !posting.IsPrivate():
		// Going public discards the digest.
		posting.AccessKeyHash = ""
	case accessKey != "":
		posting.AccessKeyHash = security.HashSecret(accessKey)
	case current.AccessKeyHash != "":
		posting.AccessKeyHash = current.AccessKeyHash
	default:
		return nil, domain.ErrValidation("a private posting requires an access key")
	}

	if err := s.postingRepo.Update(ctx, posting); err != nil {
		return nil, err
	}
	posting.AccessKeyHash = ""
	return posting, nil
}

func (s *postingService) Get(ctx context.Context, id int32) (*domain.Posting, error) {
	posting, err := s.postingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	posting.AccessKeyHash = ""
	return posting, nil
}

func (s *postingService) List(ctx context.Context, visibility string, page, pageSize int32) ([]domain.Posting, int32, error) {
	postings, count, err := s.postingRepo.List(ctx, visibility, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	for i := range postings {
		postings[i].AccessKeyHash = ""
	}
	return postings, count, nil
}

func (s *postingService) ListMine(ctx context.Context, actorID string, page, pageSize int32) ([]domain.Posting, int32, error) {
	if _, err := requireRole(ctx, s.accountRepo, actorID, domain.RoleOrganizer); err != nil {
		return nil, 0, err
	}
	profile, err := s.profileRepo.GetByUserID(ctx, actorID)
	if err != nil {
		return nil, 0, err
	}
	postings, count, err := s.postingRepo.ListByOrganizer(ctx, profile.ID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	for i := range postings {
		postings[i].AccessKeyHash = ""
	}
	return postings, count, nil
}

// authorizeOwnership admits admins and the posting's owning organizer.
func (s *postingService) authorizeOwnership(ctx context.Context, actor *domain.Account, posting *domain.Posting) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}
	if posting.OrganizerID == nil {
		return domain.ErrForbidden("only admins can modify platform postings", domain.RoleAdmin)
	}
	profile, err := s.profileRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return domain.ErrForbidden("caller does not own this posting", domain.RoleOrganizer)
		}
		return err
	}
	if profile.ID != *posting.OrganizerID {
		return domain.ErrForbidden("caller does not own this posting", domain.RoleOrganizer)
	}
	return nil
}
