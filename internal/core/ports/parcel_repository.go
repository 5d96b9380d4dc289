package ports

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
// Implementations must guarantee read-after-write consistency per key and
// uniqueness of both the parcel id and the tracking number.
type ParcelRepository interface {
	// Add persists a new parcel aggregate. Returns ErrConcurrencyConflict
	// when the id or tracking number collides with an existing record.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel aggregate. The parcel's
	// checkpoint history is append-only; implementations never rewrite
	// previously persisted checkpoints.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by id without blocking concurrent writers.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetForUpdate retrieves a parcel by id and holds it for a
	// read-modify-write: no other writer may interleave on the same id
	// until the surrounding unit of work commits or rolls back. Writers on
	// different ids do not block each other.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingNumber retrieves a parcel by its secondary identifier.
	GetByTrackingNumber(ctx context.Context, trackingNumber kernel.TrackingNumber) (*parcel.Parcel, error)
}
