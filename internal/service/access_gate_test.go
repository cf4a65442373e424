package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/security"
	"volunteerhub-backend/internal/service"
)

func TestCheckPostingAccess(t *testing.T) {
	storedHash := security.HashSecret("orchard-2024")

	tests := []struct {
		name       string
		visibility domain.Visibility
		hash       string
		key        string
		wantKind   domain.ErrorKind
	}{
		{"PublicNoKey", domain.VisibilityPublic, "", "", ""},
		{"PublicIgnoresKey", domain.VisibilityPublic, "", "whatever", ""},
		{"PrivateMissingKey", domain.VisibilityPrivate, storedHash, "", domain.KindPrivateKeyRequired},
		{"PrivateWrongKey", domain.VisibilityPrivate, storedHash, "wrong-key", domain.KindPrivateKeyInvalid},
		{"PrivateCorrectKey", domain.VisibilityPrivate, storedHash, "orchard-2024", ""},
		{"PrivateNoStoredHash", domain.VisibilityPrivate, "", "orchard-2024", domain.KindPrivateKeyInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posting := &domain.Posting{Visibility: tt.visibility, AccessKeyHash: tt.hash}
			err := service.CheckPostingAccess(posting, tt.key)
			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, domain.IsKind(err, tt.wantKind))
			}
		})
	}
}

func TestHashSecret(t *testing.T) {
	// The digest is deterministic and the comparison is by digest, never by
	// plaintext.
	assert.Equal(t, security.HashSecret("key"), security.HashSecret("key"))
	assert.NotEqual(t, security.HashSecret("key"), security.HashSecret("Key"))
	assert.Len(t, security.HashSecret("key"), 64)
	assert.True(t, security.SecretMatches("key", security.HashSecret("key")))
	assert.False(t, security.SecretMatches("key", ""))
}
