package middleware

import (
	"context"

	"github.com/tmzhouw/labor-report-backend/internal/core/domain"
)

// contextKey is a private type for context keys set by this package.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	authCtxKey   = contextKey("authorization")
)

// GetAuthFromCtx retrieves the acting principal's Authorization from the
// request context. The second return is false when no auth middleware ran.
func GetAuthFromCtx(ctx context.Context) (domain.Authorization, bool) {
	val := ctx.Value(authCtxKey)
	if val == nil {
		return domain.Authorization{}, false
	}
	auth, ok := val.(domain.Authorization)
	return auth, ok
}
