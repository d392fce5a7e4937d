package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestSessionAuthenticator_IssueAndAuthenticate(t *testing.T) {
	store := NewSessionStore()
	a := NewSessionAuthenticator(store, 2*time.Hour, false)

	rec := httptest.NewRecorder()
	token, err := a.Issue(rec, "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token != "" {
		t.Errorf("session mode must not return a bearer token, got %q", token)
	}

	cookie := sessionCookie(t, rec)
	if !cookie.HttpOnly || cookie.Value == "" {
		t.Errorf("unexpected cookie: %+v", cookie)
	}

	req := httptest.NewRequest("POST", "/api/create_post", nil)
	req.AddCookie(cookie)

	p, err := a.Authenticate(req)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if p.Username != "alice" {
		t.Errorf("username: got %q, want alice", p.Username)
	}
}

func TestSessionAuthenticator_NoCookie(t *testing.T) {
	a := NewSessionAuthenticator(NewSessionStore(), 2*time.Hour, false)

	req := httptest.NewRequest("POST", "/api/create_post", nil)
	_, err := a.Authenticate(req)
	if !errors.Is(err, ErrNoProof) {
		t.Fatalf("expected ErrNoProof, got: %v", err)
	}
}

func TestSessionAuthenticator_UnknownSession(t *testing.T) {
	a := NewSessionAuthenticator(NewSessionStore(), 2*time.Hour, false)

	req := httptest.NewRequest("POST", "/api/create_post", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "no-such-session"})
	_, err := a.Authenticate(req)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got: %v", err)
	}
}

func TestSessionAuthenticator_RevokeIsIdempotent(t *testing.T) {
	store := NewSessionStore()
	a := NewSessionAuthenticator(store, 2*time.Hour, false)

	rec := httptest.NewRecorder()
	if _, err := a.Issue(rec, "alice"); err != nil {
		t.Fatalf("Issue: %v", err)
	}
	cookie := sessionCookie(t, rec)

	req := httptest.NewRequest("POST", "/api/logout", nil)
	req.AddCookie(cookie)

	a.Revoke(httptest.NewRecorder(), req)
	if store.Len() != 0 {
		t.Errorf("store len after revoke: got %d, want 0", store.Len())
	}

	// Revoking again, and revoking with no cookie at all, must not fail.
	a.Revoke(httptest.NewRecorder(), req)
	a.Revoke(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/logout", nil))

	// The session is gone: the old cookie no longer authenticates.
	authReq := httptest.NewRequest("POST", "/api/create_post", nil)
	authReq.AddCookie(cookie)
	if _, err := a.Authenticate(authReq); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid after revoke, got: %v", err)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore()
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Put("sid-1", "alice", 2*time.Hour)

	if _, err := store.Resolve("sid-1"); err != nil {
		t.Fatalf("Resolve before expiry: %v", err)
	}

	current = current.Add(2*time.Hour + time.Minute)
	_, err := store.Resolve("sid-1")
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got: %v", err)
	}

	// The expired entry was dropped; a second lookup is now ErrInvalid.
	if _, err := store.Resolve("sid-1"); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid after lazy drop, got: %v", err)
	}
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	store := NewSessionStore()
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Put("old", "alice", time.Hour)
	store.Put("fresh", "bob", 3*time.Hour)

	current = current.Add(2 * time.Hour)
	if n := store.PurgeExpired(); n != 1 {
		t.Errorf("purged: got %d, want 1", n)
	}
	if store.Len() != 1 {
		t.Errorf("len after purge: got %d, want 1", store.Len())
	}
	if _, err := store.Resolve("fresh"); err != nil {
		t.Errorf("fresh session should survive purge: %v", err)
	}
}
