// Package models defines the domain types for Skald.
package models

import "time"

// User is a registered account. Records are created on first successful
// login for an unseen email and never mutated afterwards (there is no
// password-change flow).
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"` // stored lowercase, unique
	PasswordHash string    `json:"-"`     // PHC-encoded argon2id hash, never exposed
	CreatedAt    time.Time `json:"created_at"`
}
