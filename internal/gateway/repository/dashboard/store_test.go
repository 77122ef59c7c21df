package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"flowlens/internal/document"
)

func testDoc(id, owner string, updated time.Time) *document.Document {
	return &document.Document{
		ID:        id,
		OwnerID:   owner,
		Entity:    "Workflow Run",
		Skeleton:  "executive-overview",
		CreatedAt: updated,
		UpdatedAt: updated,
	}
}

func TestMemoryStore_SaveGet(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.Save(ctx, testDoc("d1", "acct-1", now)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Entity != "Workflow Run" {
		t.Fatalf("unexpected document: %+v", got)
	}

	// Returned copies must not alias store state.
	got.Entity = "mutated"
	again, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if again.Entity != "Workflow Run" {
		t.Fatalf("store state leaked through returned pointer")
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := New()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ListByOwnerOrdering(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	if err := s.Save(ctx, testDoc("old", "acct-1", base)); err != nil {
		t.Fatalf("save old: %v", err)
	}
	if err := s.Save(ctx, testDoc("new", "acct-1", base.Add(time.Hour))); err != nil {
		t.Fatalf("save new: %v", err)
	}
	if err := s.Save(ctx, testDoc("other", "acct-2", base)); err != nil {
		t.Fatalf("save other: %v", err)
	}

	docs, err := s.ListByOwner(ctx, "acct-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != "new" || docs[1].ID != "old" {
		t.Fatalf("expected newest first, got %s then %s", docs[0].ID, docs[1].ID)
	}
}

func TestMemoryStore_SaveUpsertsAndDeletes(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.Save(ctx, testDoc("d1", "acct-1", now)); err != nil {
		t.Fatalf("save: %v", err)
	}
	updated := testDoc("d1", "acct-1", now.Add(time.Minute))
	updated.Skeleton = "table-first"
	if err := s.Save(ctx, updated); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Skeleton != "table-first" {
		t.Fatalf("upsert did not replace, skeleton=%q", got.Skeleton)
	}

	if err := s.Delete(ctx, "d1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "d1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStore_ValidatesInput(t *testing.T) {
	s := New()
	ctx := context.Background()
	if err := s.Save(ctx, nil); err == nil {
		t.Fatalf("expected error for nil document")
	}
	if err := s.Save(ctx, &document.Document{}); err == nil {
		t.Fatalf("expected error for missing id")
	}
	if _, err := s.Get(ctx, "  "); err == nil {
		t.Fatalf("expected error for blank id")
	}
}
