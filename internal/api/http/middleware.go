package http

import (
	"net/http"
	"strings"
	"time"

	"volunteerhub-backend/internal/domain"
	"volunteerhub-backend/internal/logger"
	"volunteerhub-backend/internal/security"
	"volunteerhub-backend/internal/service"
)

// AuthMiddleware verifies the bearer token and attaches the caller's ledger
// row to the request context. The role claim inside the token is never
// trusted; role and status always come from the freshly loaded account.
func AuthMiddleware(verifier security.TokenVerifier, accounts service.AccountService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respondError(w, r, domain.ErrUnauthenticated("missing authorization header"))
				return
			}
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				respondError(w, r, domain.ErrUnauthenticated("authorization header is not a bearer token"))
				return
			}

			ident, err := verifier.Verify(token)
			if err != nil {
				respondError(w, r, err)
				return
			}

			account, err := accounts.GetOrProvision(r.Context(), ident)
			if err != nil {
				respondError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), account)))
		})
	}
}

// LoggingMiddleware emits one line per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Get().Info("request handled",
			"method", r.Method, "path", r.URL.Path, "duration_ms", time.Since(start).Milliseconds())
	})
}
