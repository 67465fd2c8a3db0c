package models

import "time"

// Note is a text note owned by a single user. Notes are immutable after
// creation; list queries are always scoped by OwnerID.
type Note struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}
