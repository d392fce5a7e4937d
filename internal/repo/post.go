package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nvtrung/forum-api/internal/models"
)

// ErrPostNotOwned reports a delete that matched no row: the post does not exist
// or belongs to someone else. The two cases are indistinguishable on purpose.
var ErrPostNotOwned = errors.New("post not found or not owned by caller")

// ==========================
// PostRepo
// ==========================
type PostRepo struct {
	DB *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db}
}

func (r *PostRepo) Create(ctx context.Context, username, title, content string) (*models.Post, error) {
	query := `
		INSERT INTO posts (username, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, username, title, content, created_at
	`

	post := &models.Post{}

	err := r.DB.QueryRowContext(ctx, query, username, title, content).
		Scan(&post.ID, &post.Username, &post.Title, &post.Content, &post.CreatedAt)

	if err != nil {
		return nil, err
	}

	return post, nil
}

// List returns all posts, newest first.
func (r *PostRepo) List(ctx context.Context) ([]models.Post, error) {
	query := `
		SELECT id, username, title, content, created_at
		FROM posts
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Username, &p.Title, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	return posts, rows.Err()
}

// DeleteOwned removes a post only when it belongs to username. The ownership
// check and the delete are a single statement, so there is no window between
// check and removal. Comments go with the post via ON DELETE CASCADE.
func (r *PostRepo) DeleteOwned(ctx context.Context, id int, username string) error {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM posts WHERE id = $1 AND username = $2`, id, username)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrPostNotOwned
	}

	return nil
}
