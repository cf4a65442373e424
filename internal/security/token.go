package security

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"volunteerhub-backend/internal/domain"
)

// Identity is the caller extracted from a verified bearer token. Role is the
// token's advisory role claim; authorization decisions must re-derive
// role/status from the account store, because the ledger can change after a
// token was issued.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

type TokenVerifier interface {
	Verify(tokenString string) (*Identity, error)
}

type userClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type tokenVerifier struct {
	secret []byte
}

// NewTokenVerifier builds a verifier for tokens issued by the identity
// provider. The service never issues or rotates credentials itself.
func NewTokenVerifier(secret string) TokenVerifier {
	return &tokenVerifier{secret: []byte(secret)}
}

func (v *tokenVerifier) Verify(tokenString string) (*Identity, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, domain.ErrUnauthenticated("missing bearer token")
	}

	claims := &userClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthenticated("invalid or expired token")
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domain.ErrUnauthenticated("token subject is not a valid account id")
	}

	return &Identity{
		UserID: subject.String(),
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
