// Package noteservice implements owner-scoped note reads and writes. The
// owner always comes from the verified identity threaded in by the caller,
// never from client-supplied fields.
package noteservice

import (
	"context"
	"fmt"
	"time"

	"github.com/starford/skald/internal/auth"
	"github.com/starford/skald/internal/models"
	"github.com/starford/skald/internal/sse"
	"github.com/starford/skald/internal/store"
)

// Service coordinates the note store and the optional event broker.
type Service struct {
	notes  store.NoteStore
	broker *sse.Broker // may be nil; events are best-effort
}

// NewService creates a note service. broker may be nil when no event
// stream is wired (tests, minimal deployments).
func NewService(notes store.NoteStore, broker *sse.Broker) *Service {
	return &Service{notes: notes, broker: broker}
}

// List returns the caller's notes, optionally restricted to those created
// after from. Order is ascending by id, which matches insertion order.
func (s *Service) List(ctx context.Context, identity auth.Identity, from *time.Time) ([]models.Note, error) {
	notes, err := s.notes.ListByOwner(ctx, identity.UserID, from)
	if err != nil {
		return nil, fmt.Errorf("noteservice: list: %w", err)
	}
	return notes, nil
}

// Create inserts a note owned by the caller and returns the stored record.
func (s *Service) Create(ctx context.Context, identity auth.Identity, content string, tags []string) (*models.Note, error) {
	note, err := s.notes.InsertNote(ctx, identity.UserID, content, tags)
	if err != nil {
		return nil, fmt.Errorf("noteservice: create: %w", err)
	}
	if s.broker != nil {
		s.broker.PublishNoteCreated(identity.UserID, note.ID)
	}
	return note, nil
}
