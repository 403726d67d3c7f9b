package server

import (
	"fmt"
	"sync"

	"rollbook/internal/parse"
	"rollbook/internal/report"
	"rollbook/internal/store"
)

// Session owns the active store handle for the dashboard. The store file
// is switchable at runtime, so the session is the single place that knows
// which file is live; handlers never touch a global path.
type Session struct {
	mu    sync.Mutex
	store *store.Store
}

// NewSession opens the store at path and wraps it in a session.
func NewSession(path string) (*Session, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	return &Session{store: st}, nil
}

// StorePath returns the path of the active store file.
func (s *Session) StorePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Path()
}

// Switch validates the store at path by loading it, then adopts it as the
// active store. On failure the current store stays active.
func (s *Session) Switch(path string) error {
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("switch store: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store = st
	return nil
}

// Summary reloads the store from disk when the file exists and derives
// the dashboard view.
func (s *Session) Summary() (report.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store.Exists() {
		if err := s.store.Load(); err != nil {
			return report.Summary{}, err
		}
	}
	return report.BuildSummary(s.store.Profiles()), nil
}

// ImportResult summarizes one processed upload.
type ImportResult struct {
	Rows  int
	Added int
}

// Import runs the full pipeline on an uploaded payload: parse everything
// first, then record, then save. A parse failure leaves the store on disk
// untouched; there is no partial commit.
func (s *Session) Import(text, source string) (ImportResult, error) {
	rows, err := parse.ParseText(text)
	if err != nil {
		return ImportResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var added int
	for _, row := range rows {
		if s.store.RecordAttendance(row.Name, row.Email, row.Timestamp, source) {
			added++
		}
	}
	if len(rows) > 0 {
		if err := s.store.Save(); err != nil {
			return ImportResult{}, err
		}
	}
	return ImportResult{Rows: len(rows), Added: added}, nil
}
