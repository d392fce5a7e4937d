package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "forum-api"

// TokenAuthenticator issues HS256-signed bearer tokens. Tokens are stateless:
// there is no revocation, a token stays valid until its expiry. Logout is a
// client-side no-op under this strategy.
type TokenAuthenticator struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenAuthenticator(secret []byte, ttl time.Duration) *TokenAuthenticator {
	return &TokenAuthenticator{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs a claim set carrying the username as subject and an absolute
// expiry of issue time plus the configured TTL.
func (a *TokenAuthenticator) Issue(_ http.ResponseWriter, username string) (string, error) {
	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authenticate reads the Authorization header. No header at all is ErrNoProof;
// anything present but unusable is ErrInvalid, except a good signature past its
// expiry, which is ErrExpired so clients can tell the two apart.
func (a *TokenAuthenticator) Authenticate(r *http.Request) (Principal, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return Principal{}, ErrNoProof
	}

	tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		return Principal{}, ErrInvalid
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(_ *jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrExpired
		}
		return Principal{}, ErrInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return Principal{}, ErrInvalid
	}

	return Principal{Username: claims.Subject}, nil
}

// Revoke is a no-op: stateless tokens cannot be invalidated before expiry.
func (a *TokenAuthenticator) Revoke(http.ResponseWriter, *http.Request) {}
