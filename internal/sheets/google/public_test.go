package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPublicClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("sheet"); got != "FB Summary" {
			t.Errorf("sheet param = %q", got)
		}
		w.Write([]byte("\"DATE\",\"COST\"\n\"9/21/2025\",\"100\"\n\"9/22/2025\",\"200\",\"extra\"\n"))
	}))
	defer srv.Close()

	c := NewPublic()
	c.baseURL = srv.URL

	grid, err := c.Fetch(context.Background(), "sheet-id", "FB Summary")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(grid) != 3 {
		t.Fatalf("got %d rows, want 3", len(grid))
	}
	if grid[1][0] != "9/21/2025" || grid[1][1] != "100" {
		t.Errorf("row = %v", grid[1])
	}
	// Ragged rows survive parsing.
	if len(grid[2]) != 3 {
		t.Errorf("ragged row = %v", grid[2])
	}
}

func TestPublicClientFetchNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewPublic()
	c.baseURL = srv.URL

	if _, err := c.Fetch(context.Background(), "sheet-id", "Missing"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestExportURL(t *testing.T) {
	c := NewPublic()
	u := c.ExportURL("abc123", "FB Summary")
	if !strings.Contains(u, "abc123") || !strings.Contains(u, "sheet=FB+Summary") {
		t.Errorf("url = %q", u)
	}
}
