package models

import "time"

// Post carries the author's username as a plain string copied at creation time,
// not a foreign key. Ownership checks compare usernames for equality.
type Post struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
