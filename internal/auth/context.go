package auth

import (
	"context"

	"portfolio/internal/identity"
)

type ctxKey string

const adminContextKey ctxKey = "portfolio.auth.admin"

func withAdminContext(ctx context.Context, adm identity.Admin) context.Context {
	return context.WithValue(ctx, adminContextKey, adm)
}

// AdminFromContext returns the authenticated admin attached by the guard.
func AdminFromContext(ctx context.Context) (identity.Admin, bool) {
	adm, ok := ctx.Value(adminContextKey).(identity.Admin)
	return adm, ok
}
