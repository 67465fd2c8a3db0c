package api

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/skald/internal/models"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// PostNoteRequest is the body of POST /notes. It carries no owner field:
// ownership comes exclusively from the verified identity.
type PostNoteRequest struct {
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Validate validates the note creation request.
func (r PostNoteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
	)
}

// NoteView is the client-facing shape of a note.
type NoteView struct {
	Content string    `json:"content"`
	Tags    []string  `json:"tags"`
	Date    time.Time `json:"date"`
}

func newNoteView(n models.Note) NoteView {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return NoteView{Content: n.Content, Tags: tags, Date: n.CreatedAt}
}

// NotesResponse wraps a note listing for its author.
type NotesResponse struct {
	Author string     `json:"author"`
	Notes  []NoteView `json:"notes"`
}
