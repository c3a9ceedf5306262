package handlers

import (
	"net/http"

	"github.com/hpandey/instaclone-be/internal/services"
)

// AuthHandler handles signup, signin and the password-reset routes.
type AuthHandler struct {
	service services.AuthServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignupPayload defines the structure for registration requests.
type SignupPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Pic      string `json:"pic"`
	Bio      string `json:"bio"`
}

// SigninPayload defines the structure for login requests.
type SigninPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles new user registration.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.SignUp(r.Context(), payload.Name, payload.Email, payload.Password, payload.Pic, payload.Bio); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Signed-Up Successfully"})
}

// Signin handles authentication and session-token issuance.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var payload SigninPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	token, user, err := h.service.SignIn(r.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// ResetPassword starts the password-reset workflow for an email address.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.RequestReset(r.Context(), payload.Email); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Check your email"})
}

// NewPassword completes a password reset with an emailed token.
func (h *AuthHandler) NewPassword(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.CompleteReset(r.Context(), payload.Token, payload.Password); err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}
