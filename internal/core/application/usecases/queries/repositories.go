package queries

import (
	"context"

	"parceltrack/internal/core/ports"
)

// Session lookups go through the store port rather than raw SQL so the read
// model works identically over the postgres and redis session backends.
type (
	// SessionUoW scopes a read of the session store.
	SessionUoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		SessionRepository() ports.SessionRepository
	}

	// SessionUoWFactory creates new session unit of work instances.
	SessionUoWFactory interface {
		Create() SessionUoW
	}
)
