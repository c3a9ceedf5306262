package auth

import (
	"context"

	"github.com/hpandey/instaclone-be/internal/models"
)

type contextKey string

const userContextKey = contextKey("currentUser")

// ContextWithUser attaches the authenticated user to the context.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user attached by the middleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
