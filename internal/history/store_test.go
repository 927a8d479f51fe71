package history

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func tempDB(t *testing.T, limit int) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(filepath.Join(dir, "test.db"), limit)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndList(t *testing.T) {
	s := tempDB(t, 0)

	e1, err := s.Add("12+7", "19")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if e1.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if _, err := s.Add("10/4", "2.5"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	entries, err := s.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Expression != "10/4" || entries[1].Expression != "12+7" {
		t.Fatalf("expected newest first, got %q then %q", entries[0].Expression, entries[1].Expression)
	}
	if entries[1].ID != e1.ID {
		t.Fatalf("expected ID %s, got %s", e1.ID, entries[1].ID)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Fatal("expected created_at to round-trip")
	}
}

func TestListRespectsLimit(t *testing.T) {
	s := tempDB(t, 0)
	for i := 0; i < 5; i++ {
		if _, err := s.Add(fmt.Sprintf("%d+0", i), fmt.Sprint(i)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	entries, err := s.List(3)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Result != "4" {
		t.Fatalf("expected newest result 4, got %s", entries[0].Result)
	}
}

func TestPrunesToRetentionCap(t *testing.T) {
	s := tempDB(t, 0)
	for i := 0; i < DefaultLimit+5; i++ {
		if _, err := s.Add(fmt.Sprintf("%d*1", i), fmt.Sprint(i)); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}
	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != DefaultLimit {
		t.Fatalf("expected %d entries after pruning, got %d", DefaultLimit, n)
	}

	entries, err := s.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	oldest := entries[len(entries)-1]
	if oldest.Result != "5" {
		t.Fatalf("expected oldest surviving result 5, got %s", oldest.Result)
	}
}

func TestCustomLimit(t *testing.T) {
	s := tempDB(t, 2)
	for _, e := range []string{"1", "2", "3"} {
		if _, err := s.Add(e, e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	entries, _ := s.List(0)
	if len(entries) != 2 || entries[0].Result != "3" || entries[1].Result != "2" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if s.Limit() != 2 {
		t.Fatalf("expected limit 2, got %d", s.Limit())
	}
}

func TestGetAndClear(t *testing.T) {
	s := tempDB(t, 0)
	e, _ := s.Add("2+2", "4")

	got, err := s.Get(e.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Result != "4" {
		t.Fatalf("expected result 4, got %s", got.Result)
	}

	cleared, err := s.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("expected 1 cleared, got %d", cleared)
	}

	_, err = s.Get(e.ID)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows after clear, got %v", err)
	}

	entries, err := s.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", entries)
	}
}

func TestRecordImplementsRecorder(t *testing.T) {
	s := tempDB(t, 0)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	if err := s.Record("√(9)", "3"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	entries, _ := s.List(1)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if !entries[0].CreatedAt.Equal(fixed) {
		t.Fatalf("expected %v, got %v", fixed, entries[0].CreatedAt)
	}
	if entries[0].Expression != "√(9)" {
		t.Fatalf("expected unicode expression to round-trip, got %q", entries[0].Expression)
	}
}

func TestInMemoryStore(t *testing.T) {
	s, err := NewStore(":memory:", 0)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer s.Close()

	if _, err := s.Add("1+1", "2"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 entry, got %d", n)
	}
}

func TestListAllAfterReopenWithSmallerLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	s, err := NewStore(path, 5)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := s.Add(fmt.Sprintf("%d+1", i), fmt.Sprint(i+1)); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	s.Close()

	s, err = NewStore(path, 2)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	entries, err := s.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("expected all 5 stored entries, got %d", len(entries))
	}
	if entries[0].Expression != "4+1" {
		t.Fatalf("expected newest first, got %q", entries[0].Expression)
	}
}
