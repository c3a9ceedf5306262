package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/hpandey/instaclone-be/internal/apperror"
	"github.com/hpandey/instaclone-be/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Middleware returns a middleware that authenticates requests by bearer token.
// The token's subject is resolved to a user record, which is attached to the
// request context for the downstream handler.
func Middleware(tokens *TokenService, users store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, apperror.NewAuthError("You must be logged in", nil))
				return
			}

			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				writeError(w, err)
				return
			}

			oid, err := primitive.ObjectIDFromHex(userID)
			if err != nil {
				writeError(w, apperror.NewAuthError("You must be logged in", err))
				return
			}

			user, err := users.FindByID(r.Context(), oid)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					// Token subject no longer exists, e.g. account deleted
					// after issuance.
					writeError(w, apperror.NewAuthError("You must be logged in", nil))
					return
				}
				writeError(w, apperror.NewDatabaseError("Something went wrong", err))
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
		})
	}
}

func writeError(w http.ResponseWriter, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("Something went wrong", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	json.NewEncoder(w).Encode(appErr.ToResponse())
}
