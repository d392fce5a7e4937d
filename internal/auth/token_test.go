package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTokenAuthenticator_IssueAndAuthenticate(t *testing.T) {
	a := NewTokenAuthenticator([]byte("test-secret"), 2*time.Hour)

	token, err := a.Issue(httptest.NewRecorder(), "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	req := httptest.NewRequest("POST", "/api/create_post", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	p, err := a.Authenticate(req)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if p.Username != "alice" {
		t.Errorf("username: got %q, want alice", p.Username)
	}
}

func TestTokenAuthenticator_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a := NewTokenAuthenticator([]byte("test-secret"), 2*time.Hour)
	a.now = func() time.Time { return issuedAt }

	token, err := a.Issue(httptest.NewRecorder(), "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/create_post", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	// One minute before expiry the token still validates.
	a.now = func() time.Time { return issuedAt.Add(2*time.Hour - time.Minute) }
	if _, err := a.Authenticate(req); err != nil {
		t.Fatalf("Authenticate at T+1h59m: %v", err)
	}

	// One minute after expiry it fails with ErrExpired, not ErrInvalid.
	a.now = func() time.Time { return issuedAt.Add(2*time.Hour + time.Minute) }
	_, err = a.Authenticate(req)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired at T+2h01m, got: %v", err)
	}
}

func TestTokenAuthenticator_MissingHeader(t *testing.T) {
	a := NewTokenAuthenticator([]byte("test-secret"), 2*time.Hour)

	req := httptest.NewRequest("POST", "/api/create_post", nil)
	_, err := a.Authenticate(req)
	if !errors.Is(err, ErrNoProof) {
		t.Fatalf("expected ErrNoProof, got: %v", err)
	}
}

func TestTokenAuthenticator_NotBearer(t *testing.T) {
	a := NewTokenAuthenticator([]byte("test-secret"), 2*time.Hour)

	req := httptest.NewRequest("POST", "/api/create_post", nil)
	req.Header.Set("Authorization", "Basic YWxpY2U6cHc=")
	_, err := a.Authenticate(req)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got: %v", err)
	}
}

func TestTokenAuthenticator_WrongSignature(t *testing.T) {
	issuer := NewTokenAuthenticator([]byte("the-real-secret"), 2*time.Hour)
	verifier := NewTokenAuthenticator([]byte("a-different-secret"), 2*time.Hour)

	token, err := issuer.Issue(httptest.NewRecorder(), "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	req := httptest.NewRequest("POST", "/api/create_post", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, err = verifier.Authenticate(req)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for wrong signature, got: %v", err)
	}
}

func TestTokenAuthenticator_Garbage(t *testing.T) {
	a := NewTokenAuthenticator([]byte("test-secret"), 2*time.Hour)

	req := httptest.NewRequest("POST", "/api/create_post", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	_, err := a.Authenticate(req)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got: %v", err)
	}
}
