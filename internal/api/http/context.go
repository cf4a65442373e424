package http

import (
	"context"

	"volunteerhub-backend/internal/domain"
)

type contextKey string

const accountContextKey contextKey = "account"

// accountFromContext returns the ledger row the auth middleware attached.
func accountFromContext(ctx context.Context) (*domain.Account, error) {
	account, ok := ctx.Value(accountContextKey).(*domain.Account)
	if !ok || account == nil {
		return nil, domain.ErrUnauthenticated("no authenticated account in request context")
	}
	return account, nil
}

func withAccount(ctx context.Context, account *domain.Account) context.Context {
	return context.WithValue(ctx, accountContextKey, account)
}
