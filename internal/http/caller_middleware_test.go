package http

import (
	"net/http"
	"testing"
	"time"

	"tuiter/internal/service"
)

func TestCallerIDMiddleware_RequiresToken(t *testing.T) {
	jwtSvc := service.NewJWTService("super-secret", time.Minute)
	env := newTestEnv(t, jwtSvc)

	w := env.do(t, http.MethodPost, "/users/alice/messages/bob", `{"body":"hola"}`, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = env.do(t, http.MethodPost, "/users/alice/messages/bob", `{"body":"hola"}`, "garbage")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with invalid token, got %d", w.Code)
	}
}

func TestCallerIDMiddleware_EnforcesCaller(t *testing.T) {
	jwtSvc := service.NewJWTService("super-secret", time.Minute)
	env := newTestEnv(t, jwtSvc)

	token, err := jwtSvc.IssueAccessToken("alice")
	if err != nil {
		t.Fatalf("issuing token: %v", err)
	}

	w := env.do(t, http.MethodPost, "/users/alice/messages/bob", `{"body":"hola"}`, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for matching caller, got %d: %s", w.Code, w.Body.String())
	}

	// alice no puede enviar en nombre de bob.
	w = env.do(t, http.MethodPost, "/users/bob/messages/alice", `{"body":"hola"}`, token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for caller mismatch, got %d", w.Code)
	}
}

func TestCallerIDMiddleware_DisabledWithoutService(t *testing.T) {
	env := newTestEnv(t, nil)

	// Sin JWT configurado los ids de la ruta se aceptan tal cual.
	w := env.do(t, http.MethodPost, "/users/alice/messages/bob", `{"body":"hola"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 with auth disabled, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCallerIDMiddleware_PublicRoutesStayOpen(t *testing.T) {
	jwtSvc := service.NewJWTService("super-secret", time.Minute)
	env := newTestEnv(t, jwtSvc)

	w := env.do(t, http.MethodGet, "/messages", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on public route, got %d", w.Code)
	}
}
