package ports

import (
	"context"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/session"
)

// SessionRepository defines the persistence contract for scanning sessions.
// Ended sessions are deleted from the active set rather than retained.
type SessionRepository interface {
	// Add persists a new session. Returns ErrConcurrencyConflict when the
	// session key collides with an active session.
	Add(ctx context.Context, aggregate *session.Session) error

	// Update persists changes to an existing session.
	Update(ctx context.Context, aggregate *session.Session) error

	// Get retrieves a session by key without blocking concurrent writers.
	Get(ctx context.Context, key kernel.SessionKey) (*session.Session, error)

	// GetForUpdate retrieves a session by key and holds it for a
	// read-modify-write until the surrounding unit of work completes.
	GetForUpdate(ctx context.Context, key kernel.SessionKey) (*session.Session, error)

	// Delete removes a session from the active set. Deleting an unknown key
	// is not an error.
	Delete(ctx context.Context, key kernel.SessionKey) error

	// GetUpdatedBefore retrieves sessions whose last mutation precedes
	// cutoff, for the stale-session sweep.
	GetUpdatedBefore(ctx context.Context, cutoff time.Time) ([]*session.Session, error)
}
