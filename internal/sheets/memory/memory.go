// Package memory provides an in-memory GridSource for tests and local
// development runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	ports "adsboard/internal/sheets"
)

type Store struct {
	mu    sync.Mutex
	grids map[string]ports.Grid
	errs  map[string]error
}

var _ ports.GridSource = (*Store)(nil)

func New() *Store {
	return &Store{
		grids: make(map[string]ports.Grid),
		errs:  make(map[string]error),
	}
}

func key(spreadsheetID, worksheet string) string {
	return spreadsheetID + "!" + worksheet
}

// Put registers a grid for one worksheet.
func (s *Store) Put(spreadsheetID, worksheet string, grid ports.Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grids[key(spreadsheetID, worksheet)] = grid
}

// Fail makes subsequent fetches of one worksheet return err, simulating an
// unreachable or revoked sheet.
func (s *Store) Fail(spreadsheetID, worksheet string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[key(spreadsheetID, worksheet)] = err
}

func (s *Store) Fetch(_ context.Context, spreadsheetID, worksheet string) (ports.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(spreadsheetID, worksheet)
	if err, ok := s.errs[k]; ok {
		return nil, err
	}
	grid, ok := s.grids[k]
	if !ok {
		return nil, fmt.Errorf("no grid registered for %s", k)
	}
	// Copy so callers cannot mutate the stored grid.
	out := make(ports.Grid, len(grid))
	for i, row := range grid {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}
