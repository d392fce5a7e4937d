package auth

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/nvtrung/forum-api/internal/metrics"
)

// SessionCookieName carries the opaque session identifier.
const SessionCookieName = "forum_session"

type sessionEntry struct {
	username  string
	expiresAt time.Time
}

// SessionStore holds server-side sessions keyed by an opaque identifier.
// Entries expire after their TTL; expired entries are dropped lazily on lookup
// and in bulk by the janitor.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]sessionEntry
	now     func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		entries: make(map[string]sessionEntry),
		now:     time.Now,
	}
}

func (s *SessionStore) Put(id, username string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = sessionEntry{username: username, expiresAt: s.now().Add(ttl)}
	metrics.SetActiveSessions(len(s.entries))
}

// Resolve returns the username behind id. Unknown or revoked ids fail with
// ErrInvalid; an entry past its expiry is dropped and fails with ErrExpired.
func (s *SessionStore) Resolve(id string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok {
		return "", ErrInvalid
	}
	if s.now().After(entry.expiresAt) {
		s.Revoke(id)
		return "", ErrExpired
	}
	return entry.username, nil
}

// Revoke removes a session. Removing an absent session is a no-op.
func (s *SessionStore) Revoke(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	metrics.SetActiveSessions(len(s.entries))
}

// PurgeExpired removes every expired entry and reports how many were dropped.
func (s *SessionStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	purged := 0
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			purged++
		}
	}
	metrics.SetActiveSessions(len(s.entries))
	return purged
}

// Len reports the current number of live entries (expired ones included until purged).
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// StartJanitor runs PurgeExpired every 10 minutes in the background. Stop the
// returned cron to halt it.
func (s *SessionStore) StartJanitor() *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("@every 10m", func() {
		if n := s.PurgeExpired(); n > 0 {
			slog.Info("session janitor purged expired sessions", "count", n)
		}
	})
	if err != nil {
		// The expression is a constant; this cannot fail at runtime.
		slog.Error("session janitor schedule", "err", err)
	}
	c.Start()
	return c
}

// SessionAuthenticator keeps the proof server-side: the client holds only an
// opaque cookie, so logout is immediate and authoritative.
type SessionAuthenticator struct {
	store  *SessionStore
	ttl    time.Duration
	secure bool
}

func NewSessionAuthenticator(store *SessionStore, ttl time.Duration, secure bool) *SessionAuthenticator {
	return &SessionAuthenticator{store: store, ttl: ttl, secure: secure}
}

// Issue creates a server-side session and hands the identifier to the client
// as an HttpOnly cookie. The returned token string is always empty.
func (a *SessionAuthenticator) Issue(w http.ResponseWriter, username string) (string, error) {
	id := uuid.NewString()
	a.store.Put(id, username, a.ttl)

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(a.ttl.Seconds()),
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return "", nil
}

func (a *SessionAuthenticator) Authenticate(r *http.Request) (Principal, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return Principal{}, ErrNoProof
	}

	username, err := a.store.Resolve(cookie.Value)
	if err != nil {
		return Principal{}, err
	}
	return Principal{Username: username}, nil
}

// Revoke drops the session behind the request's cookie, if any, and clears the
// cookie. Safe to call with no cookie or an already-revoked session.
func (a *SessionAuthenticator) Revoke(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		a.store.Revoke(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   a.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
