package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hpandey/instaclone-be/internal/services"
)

// PostHandler handles HTTP requests for posts, likes and comments.
type PostHandler struct {
	service services.PostServiceProvider
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service services.PostServiceProvider) *PostHandler {
	return &PostHandler{service: service}
}

// GetAll returns every post, newest first.
func (h *PostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.AllPosts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// GetFollowing returns posts by users the caller follows.
func (h *PostHandler) GetFollowing(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	posts, err := h.service.FollowingPosts(r.Context(), user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}

// Create handles new post creation.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var payload struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		Pic   string `json:"pic"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	post, err := h.service.CreatePost(r.Context(), user, payload.Title, payload.Body, payload.Pic)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"post": post})
}

// GetMine returns the caller's own posts.
func (h *PostHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	posts, err := h.service.MyPosts(r.Context(), user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"mypost": posts})
}

type likePayload struct {
	PostID string `json:"postId"`
}

// Like records a like on a post.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload likePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	post, err := h.service.Like(r.Context(), payload.PostID, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Unlike removes a like from a post.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload likePayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	post, err := h.service.Unlike(r.Context(), payload.PostID, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Comment appends a comment to a post.
func (h *PostHandler) Comment(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var payload struct {
		PostID string `json:"postId"`
		Text   string `json:"text"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	post, err := h.service.Comment(r.Context(), payload.PostID, user, payload.Text)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, post)
}

// Delete removes a post; only its author may do so.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, err := h.service.DeletePost(r.Context(), chi.URLParam(r, "postId"), user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Successfully deleted",
		"_id":     id,
	})
}
