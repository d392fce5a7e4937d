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

type CommentHandler struct {
	Comments *repo.CommentRepo
}

//
// ==========================
// Add Comment
// ==========================
//

func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	username := middleware.Username(r.Context())

	postID, err := strconv.Atoi(chi.URLParam(r, "postID"))
	if err != nil {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	var input struct {
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

	comment, err := h.Comments.Create(r.Context(), postID, username, input.Content)
	if err != nil {
		if errors.Is(err, repo.ErrPostNotFound) {
			JSONError(w, "post not found", http.StatusNotFound)
			return
		}
		slog.Error("add comment", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	metrics.IncCommentsCreated()

	JSON(w, http.StatusOK, map[string]interface{}{
		"message":    "comment added",
		"comment_id": comment.ID,
		"username":   comment.Username,
	})
}

//
// ==========================
// List Comments (oldest first)
// ==========================
//

func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(chi.URLParam(r, "postID"))
	if err != nil {
		JSONError(w, "invalid post id", http.StatusBadRequest)
		return
	}

	comments, err := h.Comments.ListByPost(r.Context(), postID)
	if err != nil {
		slog.Error("list comments", "err", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}
	JSON(w, http.StatusOK, comments)
}
