package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/nvtrung/forum-api/internal/auth"
	"github.com/nvtrung/forum-api/internal/config"
	"github.com/nvtrung/forum-api/internal/db"
)

func main() {

	// Load and validate configuration first: a token-mode server without a
	// signing secret must not come up.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	setupLogger(cfg.LogFormat)

	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	slog.Info("connected to database", "host", cfg.DBHost, "name", cfg.DBName)

	if err := db.Run(db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ttl := time.Duration(cfg.AuthTTLHours) * time.Hour

	var authenticator auth.Authenticator
	switch cfg.AuthMode {
	case config.AuthModeSession:
		store := auth.NewSessionStore()
		janitor := store.StartJanitor()
		defer janitor.Stop()
		authenticator = auth.NewSessionAuthenticator(store, ttl, cfg.SessionCookieSecure)
	default:
		authenticator = auth.NewTokenAuthenticator([]byte(cfg.JWTSecret), ttl)
	}

	slog.Info("auth strategy selected", "mode", cfg.AuthMode, "ttl_hours", cfg.AuthTTLHours)

	r := newRouter(database, cfg, authenticator)

	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		slog.Info("starting server with TLS", "addr", addr)
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		slog.Info("starting server", "addr", addr)
		err = http.ListenAndServe(addr, r)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func setupLogger(format string) {
	if format == "json" {
		slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
		return
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}
