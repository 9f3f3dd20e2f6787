package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one user's working set. Manual entries and bulk imports
// live in separate stores; Active names the one mutated last.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    Source
	Manual    RecordStore
	Imported  RecordStore
}

// NewSession creates a session with empty manual and import stores
func NewSession(now time.Time) *Session {
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Active:    SourceManual,
		Manual:    NewRecordStore(SourceManual),
		Imported:  NewRecordStore(SourceImport),
	}
}

// Store returns the store for source; an empty source selects the active one
func (s *Session) Store(source Source) RecordStore {
	if source == "" {
		source = s.Active
	}
	if source == SourceImport {
		return s.Imported
	}
	return s.Manual
}

// WithStore returns a copy of the session with store installed under its own
// source tag and marked active.
func (s *Session) WithStore(store RecordStore, now time.Time) *Session {
	next := *s
	switch store.Source() {
	case SourceImport:
		next.Imported = store
	default:
		next.Manual = store
	}
	next.Active = store.Source()
	next.UpdatedAt = now
	return &next
}
