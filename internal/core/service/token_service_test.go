package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/plataforma/auth-backend/internal/core/domain"
)

func TestJWTService_IssueVerify(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.Issue("alice@example.com", domain.RoleAdministrador)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Role != domain.RoleAdministrador {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expiry not in the future: %v", claims.ExpiresAt)
	}
}

func TestJWTService_DefaultTTL(t *testing.T) {
	svc := NewJWTService("secret", 0)
	if svc.ttl != defaultTokenTTL {
		t.Fatalf("expected default ttl %v, got %v", defaultTokenTTL, svc.ttl)
	}
}

func TestJWTService_VerifyExpired(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	claims := tokenClaims{
		Role: string(domain.RoleConsulta),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTService_VerifyTampered(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	token, err := svc.Issue("alice@example.com", domain.RoleConsulta)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Flip one character inside the payload segment.
	i := strings.Index(token, ".") + 2
	mutated := byte('a')
	if token[i] == 'a' {
		mutated = 'b'
	}
	tampered := token[:i] + string(mutated) + token[i+1:]

	if _, err := svc.Verify(tampered); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTService_VerifyWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := issuer.Issue("alice@example.com", domain.RoleConsulta)
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTService_VerifyMissingSubject(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	claims := tokenClaims{
		Role: string(domain.RoleConsulta),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrMissingSubject) {
		t.Fatalf("expected ErrMissingSubject, got %v", err)
	}
}

func TestJWTService_VerifyMissingExpiry(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	claims := tokenClaims{
		Role: string(domain.RoleConsulta),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "alice@example.com",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestJWTService_VerifyWrongAlgorithm(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	claims := tokenClaims{
		Role: string(domain.RoleConsulta),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
