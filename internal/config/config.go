package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AuthModeToken issues stateless signed bearer tokens; AuthModeSession keeps
// server-side sessions addressed by a cookie. Exactly one is active per deployment.
const (
	AuthModeToken   = "token"
	AuthModeSession = "session"
)

type Config struct {
	Port string

	DBHost string
	DBPort string
	DBName string
	DBUser string
	DBPass string

	// DBMaxOpenConns is the maximum number of open connections to the database (default 25).
	DBMaxOpenConns int
	// DBMaxIdleConns is the maximum number of idle connections (default 5).
	DBMaxIdleConns int

	// AuthMode is "token" (default) or "session".
	AuthMode string

	// JWTSecret signs bearer tokens. Required when AuthMode is "token"; there is
	// deliberately no built-in default.
	JWTSecret string

	// AuthTTLHours is the lifetime of a token or session in hours (default 2).
	AuthTTLHours int

	// SessionCookieSecure marks the session cookie Secure; enable when serving HTTPS.
	SessionCookieSecure bool

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the API listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is a list of origins allowed for CORS.
	// Set via CORS_ALLOWED_ORIGINS (comma-separated). When empty, no CORS headers
	// are sent (same-origin only). Session mode also sends
	// Access-Control-Allow-Credentials, since the browser must attach the session
	// cookie on cross-origin requests.
	CORSAllowedOrigins []string
}

func Load() Config {
	// A .env file in the working directory is optional.
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBName: getEnv("DB_NAME", "forumdb"),
		DBUser: getEnv("DB_USER", "forumuser"),
		DBPass: getEnv("DB_PASS", "forumpass"),

		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		AuthMode:  getEnv("AUTH_MODE", AuthModeToken),
		JWTSecret: getEnv("JWT_SECRET", ""),

		AuthTTLHours: getEnvInt("AUTH_TTL_HOURS", 2),

		SessionCookieSecure: getEnv("SESSION_COOKIE_SECURE", "") == "true",

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// Validate rejects configurations the server must not start with. In token mode
// the signing secret is mandatory: there is no fallback value.
func (c Config) Validate() error {
	switch c.AuthMode {
	case AuthModeToken:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET must be set when AUTH_MODE=%s", AuthModeToken)
		}
	case AuthModeSession:
	default:
		return fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeToken, AuthModeSession, c.AuthMode)
	}
	if c.AuthTTLHours <= 0 {
		return fmt.Errorf("AUTH_TTL_HOURS must be positive, got %d", c.AuthTTLHours)
	}
	return nil
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
