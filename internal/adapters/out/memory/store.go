// Package memory provides in-memory persistence adapters with the same
// contract as the database-backed ones: unique identifiers, deep-copied
// aggregates and per-key exclusive holds for read-modify-write cycles.
// Used as the backing store in tests and for single-process deployments
// that do not need durability.
package memory

import (
	"sync"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/session"
	"parceltrack/internal/pkg/keylock"
)

// Store holds parcels and sessions in process memory. Aggregates are cloned
// on the way in and out so callers never share mutable state with the store.
type Store struct {
	mu               sync.RWMutex
	parcels          map[string]*parcel.Parcel
	parcelsByTrackNo map[string]string
	sessions         map[string]*session.Session

	parcelLocks  *keylock.KeyedMutex
	sessionLocks *keylock.KeyedMutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		parcels:          make(map[string]*parcel.Parcel),
		parcelsByTrackNo: make(map[string]string),
		sessions:         make(map[string]*session.Session),
		parcelLocks:      keylock.NewKeyedMutex(),
		sessionLocks:     keylock.NewKeyedMutex(),
	}
}

func cloneParcel(aggregate *parcel.Parcel) (*parcel.Parcel, error) {
	return parcel.RestoreParcel(
		aggregate.ID(),
		aggregate.TrackingNumber(),
		aggregate.CustomerName(),
		aggregate.RecipientName(),
		aggregate.Destination(),
		aggregate.Details(),
		aggregate.Checkpoints(),
	)
}

func cloneSession(aggregate *session.Session) (*session.Session, error) {
	return session.RestoreSession(
		aggregate.Key(),
		aggregate.Employee(),
		aggregate.Location(),
		aggregate.State(),
		aggregate.DeviceName(),
		aggregate.CreatedAt(),
		aggregate.UpdatedAt(),
		aggregate.Scans(),
	)
}
