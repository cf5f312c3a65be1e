package models

import "time"

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	// Bcrypt output; the plaintext password is never stored.
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}
