package service

import (
	"strings"

	"github.com/zieg12345/clientsearchinfo/model"
)

// FindFirstByName returns the first row whose Name contains query,
// compared case-insensitively. Rows without a usable Name never match.
// An empty query matches the first row that has a Name at all; ties go
// to the earliest row in load order. The second return is false when
// nothing matches.
func FindFirstByName(query string, t *model.Table) (*model.Record, bool) {
	idx, ok := t.ColumnIndex(model.FieldName)
	if !ok {
		return nil, false
	}

	needle := strings.ToLower(query)
	for i, row := range t.Rows {
		if idx >= len(row) || row[idx].IsNull() {
			continue
		}
		if strings.Contains(strings.ToLower(row[idx].Display()), needle) {
			return t.Record(i), true
		}
	}
	return nil, false
}

// FieldValue is one rendered (label, value) pair of the detail view.
type FieldValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SearchResult is the outcome of one search render: the match (if any),
// every display field resolved through extraction, and the diagnostics
// collected along the way.
type SearchResult struct {
	Query       string       `json:"query"`
	Found       bool         `json:"found"`
	RowIndex    int          `json:"row_index"`
	Fields      []FieldValue `json:"fields"`
	Diagnostics []string     `json:"diagnostics"`
}

// Search runs one full render cycle against the session: lookup, an
// extraction pass over specs, and a drain of the diagnostics log. The
// whole cycle holds the session lock so the appended diagnostics are
// drained together, exactly once. On a miss the fields come back as
// their defaults.
func (s *Session) Search(query string, specs []FieldSpec) SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, found := FindFirstByName(query, s.table)

	result := SearchResult{
		Query:    query,
		Found:    found,
		RowIndex: -1,
		Fields:   make([]FieldValue, 0, len(specs)),
	}
	if found {
		result.RowIndex = rec.Index()
	}

	for _, spec := range specs {
		value, diag := Extract(rec, spec)
		if diag != "" {
			s.diags = append(s.diags, diag)
		}
		result.Fields = append(result.Fields, FieldValue{Label: spec.Field, Value: value})
	}

	result.Diagnostics = s.drainLocked()
	return result
}
