package helper

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret")
	id := primitive.NewObjectID()

	tok, err := svc.Issue(id)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != id {
		t.Fatalf("got %s, want %s", got.Hex(), id.Hex())
	}
}

func TestTokenExpiresAfterThirtyDays(t *testing.T) {
	issuer := NewTokenService("secret")
	issuer.now = func() time.Time { return time.Now().Add(-TokenTTL - time.Minute) }
	tok, err := issuer.Issue(primitive.NewObjectID())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewTokenService("secret").Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	almost := NewTokenService("secret")
	almost.now = func() time.Time { return time.Now().Add(-TokenTTL + time.Hour) }
	tok, _ = almost.Issue(primitive.NewObjectID())
	if _, err := NewTokenService("secret").Verify(tok); err != nil {
		t.Fatalf("token inside its lifetime rejected: %v", err)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tok, _ := NewTokenService("secret").Issue(primitive.NewObjectID())
	if _, err := NewTokenService("other").Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenRejectsGarbageAndEmpty(t *testing.T) {
	svc := NewTokenService("secret")
	for _, tok := range []string{"", "abc", "a.b.c"} {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%q: expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{
		UserID: primitive.NewObjectID().Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenService("secret").Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenRejectsBadSubject(t *testing.T) {
	claims := Claims{
		UserID: "not-an-id",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if _, err := NewTokenService("secret").Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
