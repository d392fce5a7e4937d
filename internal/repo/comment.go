package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/nvtrung/forum-api/internal/models"
)

// ErrPostNotFound reports a comment insert whose post_id references no post.
var ErrPostNotFound = errors.New("post not found")

// pqForeignKeyViolation is the Postgres error code for foreign_key_violation.
const pqForeignKeyViolation = "23503"

// ==========================
// CommentRepo
// ==========================
type CommentRepo struct {
	DB *sql.DB
}

func NewCommentRepo(db *sql.DB) *CommentRepo {
	return &CommentRepo{DB: db}
}

// Create inserts a comment on a post. The referenced post is validated by the
// foreign key, not a pre-check; a violation maps to ErrPostNotFound.
func (r *CommentRepo) Create(ctx context.Context, postID int, username, content string) (*models.Comment, error) {
	query := `
		INSERT INTO comments (post_id, username, content)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, username, content, created_at
	`

	comment := &models.Comment{}

	err := r.DB.QueryRowContext(ctx, query, postID, username, content).
		Scan(&comment.ID, &comment.PostID, &comment.Username, &comment.Content, &comment.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqForeignKeyViolation {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	return comment, nil
}

// ListByPost returns the comments on one post, oldest first.
func (r *CommentRepo) ListByPost(ctx context.Context, postID int) ([]models.Comment, error) {
	query := `
		SELECT id, post_id, username, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Username, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}
