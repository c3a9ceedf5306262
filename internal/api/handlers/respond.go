package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hpandey/instaclone-be/internal/apperror"
	"github.com/hpandey/instaclone-be/internal/auth"
	"github.com/hpandey/instaclone-be/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps the error taxonomy onto a single JSON error response.
func respondError(w http.ResponseWriter, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("Something went wrong", err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Error().Err(appErr).Msg("Request failed")
	}
	respondJSON(w, appErr.StatusCode(), appErr.ToResponse())
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewBadRequestError("Invalid request body", err)
	}
	return nil
}

// currentUser fetches the identity attached by the auth middleware. A miss
// means the route was wired without the middleware.
func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Str("path", r.URL.Path).Msg("No authenticated user in request context")
		respondError(w, apperror.NewInternalError("Something went wrong", nil))
		return nil, false
	}
	return user, true
}
