package service

import (
	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/security"
)

// CheckPostingAccess gates application submission on private postings.
// Public postings always pass. For private postings the caller must present
// the plaintext key whose digest matches the stored hash; the comparison is
// constant-time and the plaintext is never logged or persisted.
func CheckPostingAccess(posting *domain.Posting, accessKey string) error {
	if !posting.IsPrivate() {
		return nil
	}
	if accessKey == "" {
		return domain.ErrPrivateKeyRequired()
	}
	if !security.SecretMatches(accessKey, posting.AccessKeyHash) {
		return domain.ErrPrivateKeyInvalid()
	}
	return nil
}
