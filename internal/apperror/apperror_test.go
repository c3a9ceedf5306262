package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  *AppError
		want int
	}{
		{NewAuthError("no token", nil), http.StatusUnauthorized},
		{NewForbiddenError("not yours", nil), http.StatusForbidden},
		{NewNotFoundError("gone", nil), http.StatusNotFound},
		{NewValidationError("bad input", nil), http.StatusUnprocessableEntity},
		{NewBadRequestError("bad body", nil), http.StatusBadRequest},
		{NewDatabaseError("db down", nil), http.StatusInternalServerError},
		{NewInternalError("oops", nil), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.err.StatusCode(), c.err.Message)
	}
}

func TestErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	inner := errors.New("connection refused")
	err := NewDatabaseError("db down", inner)

	assert.Equal(t, "db down: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)

	bare := NewValidationError("bad input", nil)
	assert.Equal(t, "bad input", bare.Error())
}

func TestFromError_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("handler: %w", NewAuthError("no token", nil))

	appErr, ok := FromError(err)
	assert.True(t, ok)
	assert.Equal(t, AuthError, appErr.Type)

	_, ok = FromError(errors.New("plain"))
	assert.False(t, ok)
	_, ok = FromError(nil)
	assert.False(t, ok)
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAuthError(NewAuthError("x", nil)))
	assert.True(t, IsForbidden(NewForbiddenError("x", nil)))
	assert.True(t, IsValidationError(NewValidationError("x", nil)))
	assert.True(t, IsNotFound(NewNotFoundError("x", nil)))
	assert.False(t, IsAuthError(NewValidationError("x", nil)))
}

func TestToResponse_HidesInternalError(t *testing.T) {
	t.Parallel()

	err := NewDatabaseError("Something went wrong", errors.New("dial tcp: timeout"))
	resp := err.ToResponse()
	assert.Equal(t, "Something went wrong", resp.Error)
}
