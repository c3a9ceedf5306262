package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hpandey/instaclone-be/internal/services"
)

// UserHandler handles HTTP requests for profiles, follows and search.
type UserHandler struct {
	service services.UserServiceProvider
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider) *UserHandler {
	return &UserHandler{service: service}
}

// GetProfile returns a user together with their posts.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, posts, err := h.service.GetProfile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":  user,
		"posts": posts,
	})
}

// Follow adds the caller as a follower of another user.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload struct {
		FollowID string `json:"followId"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.service.Follow(r.Context(), user, payload.FollowID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Unfollow removes the caller from another user's followers.
func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload struct {
		UnfollowID string `json:"unfollowId"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.service.Unfollow(r.Context(), user, payload.UnfollowID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// UpdatePic replaces the caller's profile picture.
func (h *UserHandler) UpdatePic(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload struct {
		Pic string `json:"pic"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.service.UpdatePic(r.Context(), user, payload.Pic)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// UpdateBio replaces the caller's bio.
func (h *UserHandler) UpdateBio(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload struct {
		Bio string `json:"bio"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.service.UpdateBio(r.Context(), user, payload.Bio)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Search finds users by email or name prefix.
func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Query string `json:"query"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	users, err := h.service.Search(r.Context(), payload.Query)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"user": users})
}
