package domain

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// SessionRepository defines the interface for session storage operations.
// Sessions are held for the lifetime of the process only.
type SessionRepository interface {
	// Get retrieves a session by its ID
	// Returns ErrSessionNotFound if the session does not exist or has expired
	Get(ctx context.Context, id uuid.UUID) (*Session, error)

	// Save creates or replaces a session
	Save(ctx context.Context, session *Session) error

	// Delete discards a session
	// Returns ErrSessionNotFound if the session does not exist
	Delete(ctx context.Context, id uuid.UUID) error
}

// TableParser defines the interface for reading an import source into a raw table
type TableParser interface {
	// Parse reads the whole source
	// Returns a *ParseError if the source is not a readable table
	Parse(r io.Reader) (*Table, error)
}
