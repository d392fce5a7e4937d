package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/nvtrung/forum-api/internal/models"
	"github.com/nvtrung/forum-api/internal/repo"
)

func TestCommentHandler_AddComment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO comments \(post_id, username, content\)`).
		WithArgs(1, "bob", "nice post").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "username", "content", "created_at"}).
			AddRow(10, 1, "bob", "nice post", time.Now()))

	h := &CommentHandler{Comments: repo.NewCommentRepo(db)}

	body, _ := json.Marshal(map[string]string{"content": "nice post"})
	req := withURLParam(authedRequest("POST", "/api/add_comment/1", "bob", body), "postID", "1")
	rr := httptest.NewRecorder()
	h.AddComment(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("AddComment status: got %d, want 200", rr.Code)
	}
	var out struct {
		Message   string `json:"message"`
		CommentID int    `json:"comment_id"`
		Username  string `json:"username"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.CommentID != 10 || out.Username != "bob" {
		t.Errorf("unexpected response: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCommentHandler_AddComment_MissingPost(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO comments \(post_id, username, content\)`).
		WithArgs(999, "bob", "into the void").
		WillReturnError(&pq.Error{Code: "23503"})

	h := &CommentHandler{Comments: repo.NewCommentRepo(db)}

	body, _ := json.Marshal(map[string]string{"content": "into the void"})
	req := withURLParam(authedRequest("POST", "/api/add_comment/999", "bob", body), "postID", "999")
	rr := httptest.NewRecorder()
	h.AddComment(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("AddComment status: got %d, want 404", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCommentHandler_AddComment_MissingContent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &CommentHandler{Comments: repo.NewCommentRepo(db)}

	req := withURLParam(authedRequest("POST", "/api/add_comment/1", "bob", []byte(`{}`)), "postID", "1")
	rr := httptest.NewRecorder()
	h.AddComment(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("AddComment status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCommentHandler_ListComments(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	older := time.Now().Add(-time.Minute)
	newer := time.Now()
	mock.ExpectQuery(`SELECT id, post_id, username, content, created_at FROM comments WHERE post_id = \$1 ORDER BY created_at ASC`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "username", "content", "created_at"}).
			AddRow(10, 1, "alice", "first", older).
			AddRow(11, 1, "bob", "second", newer))

	h := &CommentHandler{Comments: repo.NewCommentRepo(db)}

	req := withURLParam(httptest.NewRequest("GET", "/api/comments/1", nil), "postID", "1")
	rr := httptest.NewRecorder()
	h.ListComments(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("ListComments status: got %d, want 200", rr.Code)
	}
	var comments []models.Comment
	if err := json.NewDecoder(rr.Body).Decode(&comments); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(comments) != 2 || comments[0].ID != 10 || comments[1].ID != 11 {
		t.Errorf("unexpected comments: %+v", comments)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestCommentHandler_ListComments_BadID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := &CommentHandler{Comments: repo.NewCommentRepo(db)}

	req := withURLParam(httptest.NewRequest("GET", "/api/comments/abc", nil), "postID", "abc")
	rr := httptest.NewRecorder()
	h.ListComments(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("ListComments status: got %d, want 400", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
