package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hpandey/instaclone-be/internal/apperror"
	"github.com/hpandey/instaclone-be/internal/models"
)

// fakeAuthService drives the handler without a real store behind it.
type fakeAuthService struct {
	emails map[string]bool
	tokens map[string]bool
}

func newFakeAuthService() *fakeAuthService {
	return &fakeAuthService{emails: map[string]bool{}, tokens: map[string]bool{}}
}

func (f *fakeAuthService) SignUp(_ context.Context, name, email, password, _, _ string) error {
	if name == "" || email == "" || password == "" {
		return apperror.NewValidationError("Please add all the fields", nil)
	}
	if f.emails[email] {
		return apperror.NewValidationError("User already exists with that email", nil)
	}
	f.emails[email] = true
	return nil
}

func (f *fakeAuthService) SignIn(_ context.Context, email, password string) (string, *models.User, error) {
	if !f.emails[email] || password != "pw123456" {
		return "", nil, apperror.NewValidationError("Invalid Email or password", nil)
	}
	return "session-token", &models.User{ID: primitive.NewObjectID(), Email: email}, nil
}

func (f *fakeAuthService) RequestReset(_ context.Context, email string) error {
	if !f.emails[email] {
		return apperror.NewValidationError("User doesn't exist with that email", nil)
	}
	f.tokens["reset-token"] = true
	return nil
}

func (f *fakeAuthService) CompleteReset(_ context.Context, token, _ string) error {
	if !f.tokens[token] {
		return apperror.NewValidationError("Session expired. Try again.", nil)
	}
	delete(f.tokens, token)
	return nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSignup(t *testing.T) {
	h := NewAuthHandler(newFakeAuthService())

	t.Run("success", func(t *testing.T) {
		rec := postJSON(t, h.Signup, `{"name":"A","email":"a@x.com","password":"pw123456"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Signed-Up Successfully", decodeBody(t, rec)["message"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := postJSON(t, h.Signup, `{"name":"A","email":"a@x.com","password":"pw123456"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "User already exists with that email", decodeBody(t, rec)["error"])
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := postJSON(t, h.Signup, `{"email":"b@x.com"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "Please add all the fields", decodeBody(t, rec)["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := postJSON(t, h.Signup, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request body", decodeBody(t, rec)["error"])
	})
}

func TestSignin(t *testing.T) {
	svc := newFakeAuthService()
	h := NewAuthHandler(svc)
	require.NoError(t, svc.SignUp(context.Background(), "A", "a@x.com", "pw123456", "", ""))

	t.Run("success", func(t *testing.T) {
		rec := postJSON(t, h.Signin, `{"email":"a@x.com","password":"pw123456"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "session-token", body["token"])
		assert.NotNil(t, body["user"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		rec := postJSON(t, h.Signin, `{"email":"a@x.com","password":"wrong"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "Invalid Email or password", decodeBody(t, rec)["error"])
	})
}

func TestResetRoutes(t *testing.T) {
	svc := newFakeAuthService()
	h := NewAuthHandler(svc)
	require.NoError(t, svc.SignUp(context.Background(), "A", "a@x.com", "pw123456", "", ""))

	t.Run("unknown email", func(t *testing.T) {
		rec := postJSON(t, h.ResetPassword, `{"email":"nobody@x.com"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("request and complete", func(t *testing.T) {
		rec := postJSON(t, h.ResetPassword, `{"email":"a@x.com"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Check your email", decodeBody(t, rec)["message"])

		rec = postJSON(t, h.NewPassword, `{"token":"reset-token","password":"newpw1"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Password updated successfully", decodeBody(t, rec)["message"])

		// Replay fails once the token is consumed.
		rec = postJSON(t, h.NewPassword, `{"token":"reset-token","password":"newpw2"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "Session expired. Try again.", decodeBody(t, rec)["error"])
	})
}
