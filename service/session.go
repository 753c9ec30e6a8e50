package service

import (
	"sync"
	"time"

	"github.com/zieg12345/clientsearchinfo/model"
)

// LoadStatus reports the outcome of replacing a session's table.
type LoadStatus int

const (
	// LoadReplaced means the new table fully replaced the previous one.
	LoadReplaced LoadStatus = iota
	// LoadEmptyInput means the upload parsed but had zero data rows;
	// the previous table is kept.
	LoadEmptyInput
)

// Session holds one user's state: the current master-list table and the
// diagnostics accumulated during a search render. Requests are handled
// one at a time per user, but the store is shared, so access still goes
// through the session mutex.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	table    *model.Table
	diags    []string
	lastSeen time.Time
}

func newSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		table:     model.NewSchemaTable(),
		lastSeen:  now,
	}
}

// LoadTable replaces the session's table with t. An empty table (zero
// data rows) leaves the current table untouched and reports
// LoadEmptyInput. There is no merging: after LoadReplaced the session
// holds exactly t.
func (s *Session) LoadTable(t *model.Table) LoadStatus {
	if t == nil || t.IsEmpty() {
		return LoadEmptyInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = t
	return LoadReplaced
}

// Table returns the current table. It starts as the schema-only empty
// table and is only ever swapped wholesale by LoadTable.
func (s *Session) Table() *model.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table
}

// Names returns the Name column values in row order for the selector.
// Null names are skipped; duplicates are kept.
func (s *Session) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.table.ColumnIndex(model.FieldName)
	if !ok {
		return nil
	}

	var names []string
	for _, row := range s.table.Rows {
		if idx >= len(row) || row[idx].IsNull() {
			continue
		}
		names = append(names, row[idx].Display())
	}
	return names
}

// AppendDiagnostic records one field-extraction issue.
func (s *Session) AppendDiagnostic(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.diags = append(s.diags, msg)
}

// DrainDiagnostics returns all recorded diagnostics in append order and
// clears the log.
func (s *Session) DrainDiagnostics() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drainLocked()
}

func (s *Session) drainLocked() []string {
	drained := s.diags
	s.diags = nil
	return drained
}

// Reset drops the session back to its initial state: schema-only empty
// table and an empty diagnostics log.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = model.NewSchemaTable()
	s.diags = nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) seenAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
