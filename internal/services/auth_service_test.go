package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/hpandey/instaclone-be/internal/apperror"
	"github.com/hpandey/instaclone-be/internal/auth"
	"github.com/hpandey/instaclone-be/internal/models"
	"github.com/hpandey/instaclone-be/internal/store"
)

// memUserStore implements the credential-store operations the auth service
// touches; the rest is inherited from the embedded nil interface.
type memUserStore struct {
	store.UserStore
	users map[primitive.ObjectID]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[primitive.ObjectID]*models.User{}}
}

func (m *memUserStore) Create(_ context.Context, user *models.User) (*models.User, error) {
	user.ID = primitive.NewObjectID()
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == strings.ToLower(email) {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func (m *memUserStore) FindByResetToken(_ context.Context, token string, now time.Time) (*models.User, error) {
	for _, u := range m.users {
		if u.ResetToken == token && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			return u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUserStore) SetResetToken(_ context.Context, id primitive.ObjectID, token string, expiry time.Time) error {
	u, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.ResetToken = token
	u.ResetTokenExpiry = &expiry
	return nil
}

func (m *memUserStore) UpdatePassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	u, ok := m.users[id]
	if !ok {
		return store.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = ""
	u.ResetTokenExpiry = nil
	return nil
}

func (m *memUserStore) ClearExpiredResetTokens(_ context.Context, now time.Time) (int64, error) {
	var cleared int64
	for _, u := range m.users {
		if u.ResetTokenExpiry != nil && u.ResetTokenExpiry.Before(now) {
			u.ResetToken = ""
			u.ResetTokenExpiry = nil
			cleared++
		}
	}
	return cleared, nil
}

// recordingMailer captures sends on a channel so tests can wait for the
// fire-and-forget goroutine.
type recordingMailer struct {
	sent chan sentMail
}

type sentMail struct {
	to, subject, body string
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{sent: make(chan sentMail, 4)}
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.sent <- sentMail{to: to, subject: subject, body: body}
	return nil
}

func (m *recordingMailer) wait(t *testing.T) sentMail {
	t.Helper()
	select {
	case mail := <-m.sent:
		return mail
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for email")
		return sentMail{}
	}
}

func newTestAuthService() (*AuthService, *memUserStore, *recordingMailer) {
	users := newMemUserStore()
	mail := newRecordingMailer()
	svc := NewAuthService(users, auth.NewTokenService("test-secret"), mail, "localhost:3000")
	return svc, users, mail
}

func TestSignUp_MissingFields(t *testing.T) {
	svc, _, _ := newTestAuthService()

	err := svc.SignUp(context.Background(), "A", "a@x.com", "", "", "")
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
	assert.Equal(t, "Please add all the fields", err.(*apperror.AppError).Message)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc, _, mail := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "A", "a@x.com", "pw123456", "", ""))
	mail.wait(t)

	err := svc.SignUp(ctx, "B", "a@x.com", "pw123456", "", "")
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
	assert.Equal(t, "User already exists with that email", err.(*apperror.AppError).Message)
}

func TestSignUp_DefaultsAndWelcomeMail(t *testing.T) {
	svc, users, mail := newTestAuthService()

	require.NoError(t, svc.SignUp(context.Background(), "A", "A@X.com", "pw123456", "", ""))

	sent := mail.wait(t)
	assert.Equal(t, "a@x.com", sent.to)
	assert.Equal(t, "Signed Up Successfully", sent.subject)

	user, err := users.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBio, user.Bio)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123456")))
}

func TestSignIn(t *testing.T) {
	svc, users, mail := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "A", "a@x.com", "pw123456", "", ""))
	mail.wait(t)

	t.Run("success", func(t *testing.T) {
		token, user, err := svc.SignIn(ctx, "a@x.com", "pw123456")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Empty(t, user.PasswordHash)

		subject, err := auth.NewTokenService("test-secret").Verify(token)
		require.NoError(t, err)

		stored, err := users.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, stored.ID.Hex(), subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.SignIn(ctx, "a@x.com", "nope")
		require.Error(t, err)
		assert.True(t, apperror.IsValidationError(err))
		assert.Equal(t, "Invalid Email or password", err.(*apperror.AppError).Message)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.SignIn(ctx, "b@x.com", "pw123456")
		require.Error(t, err)
		assert.True(t, apperror.IsValidationError(err))
	})
}

func TestRequestReset_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	err := svc.RequestReset(context.Background(), "nobody@x.com")
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
	assert.Equal(t, "User doesn't exist with that email", err.(*apperror.AppError).Message)
}

func TestResetWorkflow(t *testing.T) {
	svc, users, mail := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "A", "a@x.com", "oldpw123", "", ""))
	mail.wait(t)

	require.NoError(t, svc.RequestReset(ctx, "a@x.com"))
	sent := mail.wait(t)
	assert.Equal(t, "Password Reset", sent.subject)

	user, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	token := user.ResetToken
	require.Len(t, token, 64) // 32 random bytes, hex-encoded
	require.NotNil(t, user.ResetTokenExpiry)
	assert.Contains(t, sent.body, token)

	// First completion succeeds and consumes the token.
	require.NoError(t, svc.CompleteReset(ctx, token, "newpw1"))
	user, err = users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpw1")))
	assert.Empty(t, user.ResetToken)
	assert.Nil(t, user.ResetTokenExpiry)

	// Replay fails.
	err = svc.CompleteReset(ctx, token, "newpw2")
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
	assert.Equal(t, "Session expired. Try again.", err.(*apperror.AppError).Message)
}

func TestCompleteReset_ExpiredToken(t *testing.T) {
	svc, users, mail := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "A", "a@x.com", "oldpw123", "", ""))
	mail.wait(t)
	require.NoError(t, svc.RequestReset(ctx, "a@x.com"))
	mail.wait(t)

	user, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	token := user.ResetToken

	// Age the pending reset past its window.
	expired := time.Now().Add(-time.Minute)
	user.ResetTokenExpiry = &expired

	err = svc.CompleteReset(ctx, token, "newpw1")
	require.Error(t, err)
	assert.True(t, apperror.IsValidationError(err))
}

func TestRequestReset_OverwritesPendingToken(t *testing.T) {
	svc, users, mail := newTestAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SignUp(ctx, "A", "a@x.com", "pw123456", "", ""))
	mail.wait(t)

	require.NoError(t, svc.RequestReset(ctx, "a@x.com"))
	mail.wait(t)
	user, err := users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	first := user.ResetToken

	require.NoError(t, svc.RequestReset(ctx, "a@x.com"))
	mail.wait(t)
	user, err = users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	second := user.ResetToken

	// Last writer wins; the first token is no longer usable.
	assert.NotEqual(t, first, second)
	err = svc.CompleteReset(ctx, first, "newpw1")
	require.Error(t, err)

	require.NoError(t, svc.CompleteReset(ctx, second, "newpw1"))
}
