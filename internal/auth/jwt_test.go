package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hpandey/instaclone-be/internal/apperror"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("super-secret")
	userID := "64f1c0ffee0000000000abcd"

	tok, err := svc.Issue(userID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	gotUserID, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenService("right-secret").Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewTokenService("wrong-secret").Verify(tok)
	if err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
	if !apperror.IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("k").Verify("not.a.jwt")
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
	if !apperror.IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	secret := "secret"
	claims := &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	_, err = NewTokenService(secret).Verify(tok)
	if err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
	if !apperror.IsAuthError(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}

func TestVerify_RejectsNonHMACAlg(t *testing.T) {
	t.Parallel()

	// alg=none tokens must never verify.
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := NewTokenService("k").Verify(tok); err == nil {
		t.Fatalf("expected error for alg=none token, got nil")
	}
}
