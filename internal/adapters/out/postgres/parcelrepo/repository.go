package parcelrepo

import (
	"context"
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ParcelRepository using GORM.
type GormParcelRepository struct {
	db *gorm.DB
}

// NewGormParcelRepository creates a new GORM parcel repository.
func NewGormParcelRepository(db *gorm.DB) *GormParcelRepository {
	return &GormParcelRepository{db: db}
}

// Add saves a new parcel with its first checkpoint. A duplicate id or
// tracking number surfaces as ErrConcurrencyConflict so the caller can
// regenerate identifiers and retry.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConcurrencyConflictErrorWithCause(
				"parcel", aggregate.ID().String(), err)
		}
		return err
	}

	return nil
}

// Update persists newly appended checkpoints. Parcel metadata is immutable
// after creation, and checkpoint rows are never rewritten; already persisted
// sequence numbers are skipped on insert.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto.Checkpoints)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// Get retrieves a parcel by id with its full checkpoint history.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, r.db.WithContext(ctx), "id = ?", id.Bytes(), "parcelId", id.String())
}

// GetForUpdate retrieves a parcel and takes a row lock on it. The lock is
// held by the surrounding transaction until commit or rollback, so no other
// writer can interleave on the same parcel.
func (r *GormParcelRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getOne(ctx, db, "id = ?", id.Bytes(), "parcelId", id.String())
}

// GetByTrackingNumber retrieves a parcel by its customer-facing identifier.
func (r *GormParcelRepository) GetByTrackingNumber(
	ctx context.Context,
	trackingNumber kernel.TrackingNumber,
) (*parcel.Parcel, error) {
	if err := trackingNumber.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, r.db.WithContext(ctx),
		"tracking_number = ?", trackingNumber.String(), "trackingNumber", trackingNumber.String())
}

func (r *GormParcelRepository) getOne(
	_ context.Context,
	db *gorm.DB,
	where string,
	arg any,
	notFoundParam string,
	notFoundID string,
) (*parcel.Parcel, error) {
	var dto ParcelDTO
	err := db.
		Preload("Checkpoints", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("seq")
		}).
		First(&dto, where, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(notFoundParam, notFoundID)
		}
		return nil, err
	}

	return toDomain(dto)
}
