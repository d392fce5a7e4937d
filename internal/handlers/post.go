package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nvtrung/forum-api/internal/metrics"
	"github.com/nvtrung/forum-api/internal/middleware"
	"github.com/nvtrung/forum-api/internal/models"
	"github.com/nvtrung/forum-api/internal/repo"
)

type PostHandler struct {
	Posts *repo.PostRepo
}

//
// ==========================
// Create Post
// ==========================
//

func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	// Identity comes from the validated proof, never from the body.
	username := middleware.Username(r.Context())

	var input struct {
		Title   string `json:"title" validate:"required,max=255"`
		Content string `json:"content" validate:"required"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid json", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		JSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.Posts.Create(r.Context(), username, input.Title, input.Content)
	if err != nil {
		slog.Error("create post", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncPostsCreated()

	JSON(w, http.StatusOK, map[string]interface{}{
		"message":  "post created",
		"post_id":  post.ID,
		"username": post.Username,
	})
}

//
// ==========================
// List Posts (newest first)
// ==========================
//

func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		slog.Error("list posts", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}
	JSON(w, http.StatusOK, posts)
}

//
// ==========================
// Delete Post (owner only)
// ==========================
//

func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	username := middleware.Username(r.Context())

	id, err := strconv.Atoi(chi.URLParam(r, "postID"))
	if err != nil {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	if err := h.Posts.DeleteOwned(r.Context(), id, username); err != nil {
		// A missing post and someone else's post answer identically.
		if errors.Is(err, repo.ErrPostNotOwned) {
			JSONError(w, "post not found or not yours", http.StatusForbidden)
			return
		}
		slog.Error("delete post", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}
