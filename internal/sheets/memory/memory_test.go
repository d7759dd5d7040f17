package memory

import (
	"context"
	"errors"
	"testing"

	ports "adsboard/internal/sheets"
)

func TestStoreFetch(t *testing.T) {
	s := New()
	s.Put("id", "FB Summary", ports.Grid{{"a", "b"}})

	grid, err := s.Fetch(context.Background(), "id", "FB Summary")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(grid) != 1 || grid[0][0] != "a" {
		t.Errorf("grid = %v", grid)
	}

	// Mutating the returned grid must not affect the stored copy.
	grid[0][0] = "changed"
	again, _ := s.Fetch(context.Background(), "id", "FB Summary")
	if again[0][0] != "a" {
		t.Errorf("stored grid mutated: %v", again)
	}

	if _, err := s.Fetch(context.Background(), "id", "missing"); err == nil {
		t.Error("expected error for unregistered worksheet")
	}
}

func TestStoreFail(t *testing.T) {
	s := New()
	want := errors.New("boom")
	s.Fail("id", "FB Summary", want)

	if _, err := s.Fetch(context.Background(), "id", "FB Summary"); !errors.Is(err, want) {
		t.Errorf("err = %v, want %v", err, want)
	}
}
