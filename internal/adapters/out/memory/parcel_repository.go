package memory

import (
	"context"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

type parcelRepository struct {
	uow *UnitOfWork
}

func (r *parcelRepository) Add(_ context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	stored, err := cloneParcel(aggregate)
	if err != nil {
		return err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	id := aggregate.ID().String()
	trackNo := aggregate.TrackingNumber().String()
	if _, exists := store.parcels[id]; exists {
		return errs.NewConcurrencyConflictError("parcel", id)
	}
	if _, exists := store.parcelsByTrackNo[trackNo]; exists {
		return errs.NewConcurrencyConflictError("trackingNumber", trackNo)
	}

	store.parcels[id] = stored
	store.parcelsByTrackNo[trackNo] = id
	return nil
}

func (r *parcelRepository) Update(_ context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	stored, err := cloneParcel(aggregate)
	if err != nil {
		return err
	}

	store := r.uow.store
	store.mu.Lock()
	defer store.mu.Unlock()

	id := aggregate.ID().String()
	if _, exists := store.parcels[id]; !exists {
		return errs.NewObjectNotFoundError("parcelId", id)
	}

	store.parcels[id] = stored
	return nil
}

func (r *parcelRepository) Get(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	store := r.uow.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	return r.getLocked(id)
}

func (r *parcelRepository) GetForUpdate(_ context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	// The key hold must be taken before the read so a concurrent holder's
	// write is observed, and kept until the unit of work completes.
	r.uow.holdParcelKey(id.String())

	store := r.uow.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	return r.getLocked(id)
}

func (r *parcelRepository) GetByTrackingNumber(
	_ context.Context,
	trackingNumber kernel.TrackingNumber,
) (*parcel.Parcel, error) {
	store := r.uow.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	id, ok := store.parcelsByTrackNo[trackingNumber.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("trackingNumber", trackingNumber.String())
	}

	return cloneParcel(store.parcels[id])
}

func (r *parcelRepository) getLocked(id kernel.UUID) (*parcel.Parcel, error) {
	stored, ok := r.uow.store.parcels[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("parcelId", id.String())
	}

	return cloneParcel(stored)
}
