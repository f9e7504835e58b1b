package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSignAndParse(t *testing.T) {
	s := NewJWTSigner("test-secret", time.Hour)

	token, err := s.Sign("Sadim", 42)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("token %q is not a JWT", token)
	}

	claims, err := s.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Name != "Sadim" || claims.ID != 42 {
		t.Errorf("claims = %+v, want Sadim/42", claims)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected expiry")
	}
}

func TestParseWrongSecret(t *testing.T) {
	token, err := NewJWTSigner("secret-a", time.Hour).Sign("Sadim", 1)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWTSigner("secret-b", time.Hour).Parse(token); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestParseExpired(t *testing.T) {
	s := NewJWTSigner("test-secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	s.now = func() time.Time { return issued }

	token, err := s.Sign("Sadim", 1)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	s.now = time.Now
	if _, err := s.Parse(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{
		Name: "Sadim",
		ID:   1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewJWTSigner("test-secret", time.Hour).Parse(token); err == nil {
		t.Fatal("expected error for HS512 token")
	}
}

func TestParseGarbage(t *testing.T) {
	s := NewJWTSigner("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := s.Parse(token); err == nil {
			t.Errorf("Parse(%q) expected error", token)
		}
	}
}
