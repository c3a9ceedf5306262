package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/hpandey/instaclone-be/internal/apperror"
	"github.com/hpandey/instaclone-be/internal/auth"
	"github.com/hpandey/instaclone-be/internal/mailer"
	"github.com/hpandey/instaclone-be/internal/models"
	"github.com/hpandey/instaclone-be/internal/store"
)

const (
	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
)

// AuthServiceProvider defines the interface for signup, signin and the
// password-reset workflow.
type AuthServiceProvider interface {
	SignUp(ctx context.Context, name, email, password, pic, bio string) error
	SignIn(ctx context.Context, email, password string) (string, *models.User, error)
	RequestReset(ctx context.Context, email string) error
	CompleteReset(ctx context.Context, token, newPassword string) error
}

// AuthService provides account creation, credential checks and password
// resets.
type AuthService struct {
	users   store.UserStore
	tokens  *auth.TokenService
	mail    mailer.Mailer
	appHost string // host embedded in reset links
}

// NewAuthService creates a new AuthService.
func NewAuthService(users store.UserStore, tokens *auth.TokenService, mail mailer.Mailer, appHost string) *AuthService {
	return &AuthService{users: users, tokens: tokens, mail: mail, appHost: appHost}
}

// SignUp registers a new account and sends a welcome email.
func (s *AuthService) SignUp(ctx context.Context, name, email, password, pic, bio string) error {
	if name == "" || email == "" || password == "" {
		return apperror.NewValidationError("Please add all the fields", nil)
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return apperror.NewValidationError("User already exists with that email", nil)
	}
	if !errors.Is(err, store.ErrNotFound) {
		return apperror.NewDatabaseError("Something went wrong", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternalError("Something went wrong", err)
	}

	if bio == "" {
		bio = models.DefaultBio
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Pic:          pic,
		Bio:          bio,
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return apperror.NewDatabaseError("Failed to create user", err)
	}

	s.sendAsync(created.Email, "Signed Up Successfully",
		"<p>Thank you for signing up for My Insta :)</p><h5>We're glad to have you here with us.</h5>")
	return nil
}

// SignIn checks credentials and returns a session token with the user record.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, apperror.NewValidationError("Please add email or password", nil)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, apperror.NewValidationError("Invalid Email or password", nil)
		}
		return "", nil, apperror.NewDatabaseError("Something went wrong", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, apperror.NewValidationError("Invalid Email or password", nil)
	}

	token, err := s.tokens.Issue(user.ID.Hex())
	if err != nil {
		return "", nil, apperror.NewInternalError("Failed to generate token", err)
	}

	user.PasswordHash = ""
	return token, user, nil
}

// RequestReset stores a fresh single-use reset token on the account and mails
// the reset link. A pending reset is overwritten; the newest mail wins.
func (s *AuthService) RequestReset(ctx context.Context, email string) error {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return apperror.NewInternalError("Failed to generate token", err)
	}
	token := hex.EncodeToString(buf)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NewValidationError("User doesn't exist with that email", nil)
		}
		return apperror.NewDatabaseError("Something went wrong", err)
	}

	expiry := time.Now().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return apperror.NewDatabaseError("Something went wrong", err)
	}

	// Delivery is not awaited and a failure does not roll the token back; the
	// stored token stays the single source of truth for the pending reset.
	link := fmt.Sprintf("http://%s/reset/%s", s.appHost, token)
	s.sendAsync(user.Email, "Password Reset",
		fmt.Sprintf(`<p>You requested a password reset</p><h5>Click this <a href="%s">link</a> to reset your password</h5>`, link))
	return nil
}

// CompleteReset consumes a reset token: the password is re-hashed and both
// reset fields are cleared in the same write, so a replay finds no token.
func (s *AuthService) CompleteReset(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return apperror.NewValidationError("Please add all the fields", nil)
	}

	user, err := s.users.FindByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NewValidationError("Session expired. Try again.", nil)
		}
		return apperror.NewDatabaseError("Something went wrong", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperror.NewInternalError("Something went wrong", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return apperror.NewDatabaseError("Failed to update password", err)
	}
	return nil
}

func (s *AuthService) sendAsync(to, subject, body string) {
	go func() {
		if err := s.mail.Send(to, subject, body); err != nil {
			log.Error().Err(err).Str("to", to).Str("subject", subject).Msg("Failed to send email")
		}
	}()
}
