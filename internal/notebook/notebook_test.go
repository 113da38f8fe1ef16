package notebook

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	s, err := NewStore(Config{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	note := &Note{
		Term:     "sextant",
		Context:  "The navigator checked the sextant against the pale sun.",
		Answer:   "An instrument for measuring angles between objects.",
		Source:   "voyage.epub",
		Language: "en",
	}
	id, err := s.Save(ctx, note)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive id, got %d", id)
	}

	got, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Term != note.Term || got.Context != note.Context || got.Answer != note.Answer {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestSaveRequiresTerm(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Save(context.Background(), &Note{Term: "   "}); err == nil {
		t.Fatal("expected error for blank term")
	}
}

func TestListNewestFirstWithFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, term := range []string{"quay", "sextant", "quay"} {
		if _, err := s.Save(ctx, &Note{Term: term, Context: "ctx"}); err != nil {
			t.Fatalf("Save(%s): %v", term, err)
		}
	}

	all, err := s.List(ctx, ListOpts{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(all))
	}
	if all[0].ID <= all[1].ID {
		t.Errorf("expected newest first, got ids %d, %d", all[0].ID, all[1].ID)
	}

	quay, err := s.List(ctx, ListOpts{Term: "QUAY"})
	if err != nil {
		t.Fatalf("List(term): %v", err)
	}
	if len(quay) != 2 {
		t.Errorf("expected 2 quay notes (case-insensitive), got %d", len(quay))
	}
}

func TestListPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := s.Save(ctx, &Note{Term: "term", Context: "ctx"}); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	page, err := s.List(ctx, ListOpts{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("expected page of 2, got %d", len(page))
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, &Note{Term: "quay", Context: "ctx"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, id); err == nil {
		t.Error("expected error deleting missing note")
	}
	if _, err := s.Get(ctx, id); err == nil {
		t.Error("expected error reading deleted note")
	}
}

func TestCount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if n, err := s.Count(ctx); err != nil || n != 0 {
		t.Fatalf("expected empty store, got n=%d err=%v", n, err)
	}
	if _, err := s.Save(ctx, &Note{Term: "quay"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n, err := s.Count(ctx); err != nil || n != 1 {
		t.Fatalf("expected 1 note, got n=%d err=%v", n, err)
	}
}
