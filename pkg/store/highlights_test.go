package store

import (
	"path/filepath"
	"testing"

	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
)

func openTestStore(t *testing.T, path string) *HighlightStore {
	t.Helper()
	s, err := OpenHighlights(path)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHighlightLifecycle(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "highlights.db"))

	if got := s.List(); len(got) != 0 {
		t.Fatalf("expected empty store, got %d highlights", len(got))
	}

	h, err := s.Add(common.Highlight{Text: "the fall of Rome", From: 10, To: 26, Color: "#fde047"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.ID == "" {
		t.Error("expected an assigned ID")
	}
	if h.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}

	if got := s.List(); len(got) != 1 || got[0].Text != "the fall of Rome" {
		t.Fatalf("unexpected list: %+v", got)
	}

	removed, err := s.Remove(h.ID)
	if err != nil || !removed {
		t.Fatalf("expected removal to succeed, got removed=%v err=%v", removed, err)
	}
	if removed, _ := s.Remove("missing"); removed {
		t.Error("expected removal of unknown ID to be a no-op")
	}
}

func TestHighlightsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highlights.db")

	s := openTestStore(t, path)
	if _, err := s.Add(common.Highlight{Text: "1789", From: 0, To: 4, Color: "#f9a8d4"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Add(common.Highlight{Text: "1793", From: 8, To: 12, Color: "#a5f3fc"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	reopened := openTestStore(t, path)
	got := reopened.List()
	if len(got) != 2 {
		t.Fatalf("expected 2 highlights after reopen, got %d", len(got))
	}
	if got[0].Text != "1789" || got[1].Text != "1793" {
		t.Errorf("order not preserved: %+v", got)
	}
}

func TestFailedPersistRollsBack(t *testing.T) {
	s := openTestStore(t, filepath.Join(t.TempDir(), "highlights.db"))
	h, err := s.Add(common.Highlight{Text: "Waterloo", From: 0, To: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Writes fail once the database is closed.
	if err := s.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	if removed, err := s.Remove(h.ID); err == nil || removed {
		t.Errorf("expected Remove to fail on a closed database, got removed=%v err=%v", removed, err)
	}
	if got := s.List(); len(got) != 1 {
		t.Errorf("expected the highlight to survive a failed removal, got %d", len(got))
	}

	if err := s.Clear(); err == nil {
		t.Error("expected Clear to fail on a closed database")
	}
	if got := s.List(); len(got) != 1 {
		t.Errorf("expected the highlight to survive a failed clear, got %d", len(got))
	}
}

func TestClearEmptiesStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highlights.db")
	s := openTestStore(t, path)
	s.Add(common.Highlight{Text: "a"})
	s.Add(common.Highlight{Text: "b"})

	if err := s.Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.List(); len(got) != 0 {
		t.Fatalf("expected empty store after clear, got %d", len(got))
	}

	reopened := openTestStore(t, path)
	if got := reopened.List(); len(got) != 0 {
		t.Errorf("clear was not persisted, got %d highlights", len(got))
	}
}
