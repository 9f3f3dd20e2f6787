package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/simaogato/propertyflow-backend/internal/domain"
)

// sessionRepository implements domain.SessionRepository on an expiring
// in-process cache. A session that is not touched for ttl is discarded.
type sessionRepository struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewSessionRepository creates a session repository.
// cleanupInterval controls how often expired sessions are purged.
func NewSessionRepository(ttl, cleanupInterval time.Duration) domain.SessionRepository {
	return &sessionRepository{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Get retrieves a session and extends its lifetime
func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	item, found := r.cache.Get(id.String())
	if !found {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}

	session, ok := item.(*domain.Session)
	if !ok {
		return nil, fmt.Errorf("unexpected value stored for session %s", id)
	}

	// Sliding expiry: reading a session counts as activity
	r.cache.Set(id.String(), session, r.ttl)

	return session, nil
}

// Save creates or replaces a session
func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("failed to save session: session is nil")
	}

	r.cache.Set(session.ID.String(), session, r.ttl)
	return nil
}

// Delete discards a session
func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, found := r.cache.Get(id.String()); !found {
		return fmt.Errorf("session %s: %w", id, domain.ErrSessionNotFound)
	}
	r.cache.Delete(id.String())
	return nil
}
