package main

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nvtrung/forum-api/internal/auth"
	"github.com/nvtrung/forum-api/internal/config"
	"github.com/nvtrung/forum-api/internal/handlers"
	"github.com/nvtrung/forum-api/internal/middleware"
	"github.com/nvtrung/forum-api/internal/repo"
)

// newRouter builds the full handler chain. Kept separate from main so
// integration tests can mount it on an httptest server.
func newRouter(db *sql.DB, cfg config.Config, authenticator auth.Authenticator) http.Handler {
	authHandler := &handlers.AuthHandler{
		Users: repo.NewUserRepo(db),
		Auth:  authenticator,
	}
	postHandler := &handlers.PostHandler{Posts: repo.NewPostRepo(db)}
	commentHandler := &handlers.CommentHandler{Comments: repo.NewCommentRepo(db)}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	// Session mode needs credentialed CORS so browsers attach the cookie.
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins, cfg.AuthMode == config.AuthModeSession))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/posts", postHandler.ListPosts)
		r.Get("/comments/{postID}", commentHandler.ListComments)

		// Protected
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(authenticator))
			r.Post("/create_post", postHandler.CreatePost)
			r.Post("/add_comment/{postID}", commentHandler.AddComment)
			r.Delete("/delete_post/{postID}", postHandler.DeletePost)
		})
	})

	return r
}
