// Package testutil provides shared in-memory fakes for the store
// collaborators.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/starford/skald/internal/apperr"
	"github.com/starford/skald/internal/models"
	"github.com/starford/skald/internal/store"
)

// FakeStore is an in-memory store.Store. Error fields allow failure
// injection per operation; Calls counts every store method invocation so
// tests can assert that rejected requests never reach the store.
type FakeStore struct {
	mu     sync.Mutex
	users  map[string]*models.User
	notes  []models.Note
	nextID int64

	FindErr   error
	CreateErr error
	ListErr   error
	InsertErr error

	Calls int
}

var _ store.Store = (*FakeStore)(nil)

// NewFakeStore creates an empty fake store.
func NewFakeStore() *FakeStore {
	return &FakeStore{
		users:  make(map[string]*models.User),
		nextID: 1,
	}
}

// FindByEmail implements store.UserStore.
func (f *FakeStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// CreateUser implements store.UserStore.
func (f *FakeStore) CreateUser(_ context.Context, email, passwordHash string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	key := strings.ToLower(email)
	if _, ok := f.users[key]; ok {
		return nil, apperr.ErrIntegrity
	}
	u := &models.User{
		ID:           f.nextID,
		Email:        key,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.users[key] = u
	cp := *u
	return &cp, nil
}

// ListByOwner implements store.NoteStore.
func (f *FakeStore) ListByOwner(_ context.Context, ownerID int64, from *time.Time) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := []models.Note{}
	for _, n := range f.notes {
		if n.OwnerID != ownerID {
			continue
		}
		if from != nil && !n.CreatedAt.After(*from) {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// InsertNote implements store.NoteStore.
func (f *FakeStore) InsertNote(_ context.Context, ownerID int64, content string, tags []string) (*models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	if f.InsertErr != nil {
		return nil, f.InsertErr
	}
	if tags == nil {
		tags = []string{}
	}
	n := models.Note{
		ID:        f.nextID,
		OwnerID:   ownerID,
		Content:   content,
		Tags:      tags,
		CreatedAt: time.Now(),
	}
	f.nextID++
	f.notes = append(f.notes, n)
	cp := n
	return &cp, nil
}

// Ping implements store.Store.
func (f *FakeStore) Ping(context.Context) error { return nil }

// Close implements store.Store.
func (f *FakeStore) Close() error { return nil }

// UserCount returns the number of stored users.
func (f *FakeStore) UserCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// NoteCount returns the number of stored notes.
func (f *FakeStore) NoteCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.notes)
}
