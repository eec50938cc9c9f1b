package auth

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := GenerateToken("editor", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	got, err := SubjectFromToken(tok, secret)
	if err != nil {
		t.Fatalf("SubjectFromToken error: %v", err)
	}
	if got != "editor" {
		t.Fatalf("subject mismatch: got %q want %q", got, "editor")
	}
}

func TestSubjectFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u1", secret, -1*time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := SubjectFromToken(tok, secret); err != common.ErrTokenExpired {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestSubjectFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := SubjectFromToken(tok, []byte("wrong-secret")); err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestSubjectFromToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u3", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := SubjectFromToken(tok, secret); err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestSubjectFromToken_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := SubjectFromToken("not-a-token", []byte("s")); err != common.ErrInvalidToken {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
