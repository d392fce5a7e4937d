// Package auth implements the credential proof boundary: issuing a proof of
// identity after login and resolving it back to a principal on later requests.
//
// Two strategies exist, selected once at startup and never mixed: a stateless
// signed bearer token (TokenAuthenticator) and a server-side session addressed
// by a cookie (SessionAuthenticator). Both carry only the username; there is no
// user id in the proof, so every later authorization check compares usernames.
package auth

import (
	"errors"
	"net/http"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	Username string
}

var (
	// ErrNoProof means the request carried no credential proof at all.
	ErrNoProof = errors.New("no credential proof presented")
	// ErrExpired means the proof was well-formed but past its lifetime.
	ErrExpired = errors.New("credential proof expired")
	// ErrInvalid means the proof was present but malformed or unverifiable.
	ErrInvalid = errors.New("credential proof invalid")
)

// Authenticator issues and resolves credential proofs.
type Authenticator interface {
	// Issue establishes proof for username after successful credential
	// verification. Transport artifacts (Set-Cookie) are written to w; the
	// returned string is the bearer token, empty for cookie-based strategies.
	Issue(w http.ResponseWriter, username string) (string, error)

	// Authenticate resolves the request's proof to a principal. Fails with
	// ErrNoProof, ErrExpired, or ErrInvalid.
	Authenticate(r *http.Request) (Principal, error)

	// Revoke clears any server-side state behind the request's proof and any
	// transport artifacts. Idempotent: revoking an absent or already-revoked
	// proof is a no-op.
	Revoke(w http.ResponseWriter, r *http.Request)
}
