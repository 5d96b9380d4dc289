package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. Repositories
// obtained from it operate within the transaction started by Begin, and any
// record held via GetForUpdate stays exclusively held until Commit or
// Rollback releases it.
type UnitOfWork interface {
	// Begin starts a new transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and releases held records.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and releases held
	// records. Safe to call after Commit; the usual pattern is
	// defer uow.Rollback(ctx).
	Rollback(ctx context.Context) error

	// ParcelRepository returns a ParcelRepository bound to the current
	// transaction.
	ParcelRepository() ParcelRepository

	// SessionRepository returns a SessionRepository bound to the current
	// transaction.
	SessionRepository() SessionRepository
}
