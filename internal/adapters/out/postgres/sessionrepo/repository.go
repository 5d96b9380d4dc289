package sessionrepo

import (
	"context"
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/session"
	"parceltrack/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionRepository implements SessionRepository using GORM.
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GORM session repository.
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

// Add saves a new session. A key collision with an active session surfaces
// as ErrConcurrencyConflict so the caller can regenerate the key.
func (r *GormSessionRepository) Add(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConcurrencyConflictErrorWithCause(
				"sessionKey", aggregate.Key().String(), err)
		}
		return err
	}

	return nil
}

// Update persists session state changes and any newly recorded scans.
// Already persisted scan rows are skipped on insert.
func (r *GormSessionRepository) Update(ctx context.Context, aggregate *session.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&SessionDTO{}).
		Where("key = ?", dto.Key).
		Updates(map[string]any{
			"state":       dto.State,
			"device_name": dto.DeviceName,
			"updated_at":  dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("sessionKey", dto.Key)
	}

	if len(dto.Scans) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto.Scans).Error
}

// Get retrieves a session by key with its scan history.
func (r *GormSessionRepository) Get(ctx context.Context, key kernel.SessionKey) (*session.Session, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(r.db.WithContext(ctx), key)
}

// GetForUpdate retrieves a session and takes a row lock on it for the rest
// of the surrounding transaction.
func (r *GormSessionRepository) GetForUpdate(ctx context.Context, key kernel.SessionKey) (*session.Session, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getOne(db, key)
}

// Delete removes a session and its scan history. Unknown keys are not an
// error.
func (r *GormSessionRepository) Delete(ctx context.Context, key kernel.SessionKey) error {
	if err := key.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).
		Where("session_key = ?", key.String()).
		Delete(&SessionScanDTO{}).Error
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Where("key = ?", key.String()).
		Delete(&SessionDTO{}).Error
}

// GetUpdatedBefore retrieves sessions whose last mutation precedes cutoff.
func (r *GormSessionRepository) GetUpdatedBefore(
	ctx context.Context,
	cutoff time.Time,
) ([]*session.Session, error) {
	var dtos []SessionDTO
	err := r.db.WithContext(ctx).
		Preload("Scans").
		Find(&dtos, "updated_at < ?", cutoff).Error
	if err != nil {
		return nil, err
	}

	sessions := make([]*session.Session, 0, len(dtos))
	for _, dto := range dtos {
		restored, restoreErr := toDomain(dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		sessions = append(sessions, restored)
	}

	return sessions, nil
}

func (r *GormSessionRepository) getOne(db *gorm.DB, key kernel.SessionKey) (*session.Session, error) {
	var dto SessionDTO
	err := db.
		Preload("Scans", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("scanned_at")
		}).
		First(&dto, "key = ?", key.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sessionKey", key.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
