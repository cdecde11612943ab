package service

import (
	"errors"
	"testing"
	"time"
)

func TestJWTServiceIssueAndParse(t *testing.T) {
	svc := NewJWTService("super-secret", 15*time.Minute)

	token, err := svc.IssueAccessToken("alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.UserID != "alice" {
		t.Fatalf("expected uid alice, got %q", claims.UserID)
	}
	if claims.TokenType != "access" {
		t.Fatalf("expected access token, got %q", claims.TokenType)
	}
}

func TestJWTServiceParse_Expired(t *testing.T) {
	svc := NewJWTService("super-secret", time.Minute)
	svc.accessTTL = -time.Minute

	token, err := svc.IssueAccessToken("alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.ParseAccessToken(token); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWTServiceParse_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Minute)
	verifier := NewJWTService("secret-b", time.Minute)

	token, err := issuer.IssueAccessToken("alice")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := verifier.ParseAccessToken(token); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}

func TestJWTServiceIssue_EmptyUser(t *testing.T) {
	svc := NewJWTService("super-secret", time.Minute)

	if _, err := svc.IssueAccessToken("  "); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid, got %v", err)
	}
}
