package noteservice

import (
	"context"
	"testing"
	"time"

	"github.com/starford/skald/internal/auth"
	"github.com/starford/skald/internal/sse"
	"github.com/starford/skald/internal/testutil"
)

var (
	alice = auth.Identity{UserID: 1, Email: "alice@x.com"}
	bob   = auth.Identity{UserID: 2, Email: "bob@x.com"}
)

func TestCreateAndList(t *testing.T) {
	svc := NewService(testutil.NewFakeStore(), nil)
	ctx := context.Background()

	note, err := svc.Create(ctx, alice, "hi", []string{"x"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if note.OwnerID != alice.UserID {
		t.Errorf("owner = %d, want %d", note.OwnerID, alice.UserID)
	}
	if note.ID == 0 {
		t.Error("no id generated")
	}

	notes, err := svc.List(ctx, alice, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 1 || notes[0].Content != "hi" {
		t.Errorf("notes = %+v, want one note with content %q", notes, "hi")
	}
}

func TestListScopesToOwner(t *testing.T) {
	svc := NewService(testutil.NewFakeStore(), nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, alice, "alice's note", nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	notes, err := svc.List(ctx, bob, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("bob sees %d of alice's notes, want 0", len(notes))
	}
}

func TestListFromFilter(t *testing.T) {
	st := testutil.NewFakeStore()
	svc := NewService(st, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, alice, "old", nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	future := time.Now().Add(time.Hour)
	notes, err := svc.List(ctx, alice, &future)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("from-filter returned %d notes, want 0", len(notes))
	}

	past := time.Now().Add(-time.Hour)
	notes, err = svc.List(ctx, alice, &past)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("from-filter returned %d notes, want 1", len(notes))
	}
}

func TestCreatePublishesOwnerEvent(t *testing.T) {
	broker := sse.NewBroker()
	defer broker.Close()

	svc := NewService(testutil.NewFakeStore(), broker)

	aliceCh := broker.Subscribe(alice.UserID)
	defer broker.Unsubscribe(aliceCh)
	bobCh := broker.Subscribe(bob.UserID)
	defer broker.Unsubscribe(bobCh)

	if _, err := svc.Create(context.Background(), alice, "hi", nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	select {
	case msg := <-aliceCh:
		if string(msg) == "" {
			t.Error("empty event payload")
		}
	case <-time.After(time.Second):
		t.Fatal("owner did not receive the note.created event")
	}

	select {
	case <-bobCh:
		t.Fatal("event leaked to another owner's subscriber")
	case <-time.After(50 * time.Millisecond):
	}
}
