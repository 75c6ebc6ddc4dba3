package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"neighborly/internal/security"
)

func newTestAuth(t *testing.T) (*AuthHandler, *security.TokenIssuer) {
	t.Helper()

	tokens, err := security.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create token issuer: %v", err)
	}
	hash, err := security.HashPassword("letmein")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return NewAuthHandler(tokens, hash), tokens
}

func TestLoginIssuesValidToken(t *testing.T) {
	handler, tokens := newTestAuth(t)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(`{"password": "letmein"}`))
	handler.Login(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var resp loginResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	subject, err := tokens.Validate(resp.Token)
	if err != nil {
		t.Fatalf("issued token failed validation: %v", err)
	}
	if subject != "admin" {
		t.Errorf("expected subject 'admin', got %q", subject)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	handler, _ := newTestAuth(t)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(`{"password": "wrong"}`))
	handler.Login(recorder, req)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", recorder.Code)
	}
}

func TestLoginUnconfigured(t *testing.T) {
	tokens, err := security.NewTokenIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("failed to create token issuer: %v", err)
	}
	handler := NewAuthHandler(tokens, "")

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/login", strings.NewReader(`{"password": "anything"}`))
	handler.Login(recorder, req)

	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", recorder.Code)
	}
}

func TestRequireAuth(t *testing.T) {
	_, tokens := newTestAuth(t)
	mw := NewMiddleware(tokens)

	var gotSubject string
	protected := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = r.Context().Value(SubjectContextKey).(string)
		w.WriteHeader(http.StatusOK)
	})

	// No Authorization header at all.
	recorder := httptest.NewRecorder()
	protected(recorder, httptest.NewRequest("GET", "/protected", nil))
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", recorder.Code)
	}

	// Garbage token.
	recorder = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	protected(recorder, req)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for bad token, got %d", recorder.Code)
	}

	// Valid token reaches the handler with the subject in context.
	token, err := tokens.Issue("admin")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	recorder = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	protected(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200 with valid token, got %d", recorder.Code)
	}
	if gotSubject != "admin" {
		t.Errorf("expected subject 'admin' in context, got %q", gotSubject)
	}
}
