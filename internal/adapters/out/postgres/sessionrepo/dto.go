// Package sessionrepo provides data transfer objects and mapping functions
// for scanning-session persistence. Sessions are short-lived rows keyed by
// session key; scan history rows are append-only.
package sessionrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/session"

	"github.com/google/uuid"
)

// SessionDTO represents the database structure for persisting session
// aggregates. updated_at is indexed for the stale-session sweep.
type SessionDTO struct {
	Key        string `gorm:"primaryKey;size:8"`
	Employee   string `gorm:"size:255"`
	Location   string `gorm:"size:255"`
	State      int
	DeviceName string `gorm:"size:255"`
	// The aggregate owns both timestamps; GORM must not auto-populate them.
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"index;autoUpdateTime:false"`

	Scans []SessionScanDTO `gorm:"foreignKey:SessionKey;references:Key"`
}

// TableName overrides GORM's default naming to use "sessions".
func (SessionDTO) TableName() string {
	return "sessions"
}

// SessionScanDTO represents one recorded scan. The composite key makes
// re-persisting an already recorded scan a no-op on conflict.
type SessionScanDTO struct {
	SessionKey    string    `gorm:"primaryKey;size:8"`
	ParcelID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CheckpointSeq int       `gorm:"primaryKey"`
	ScannedAt     time.Time
}

// TableName overrides GORM's default naming to use "session_scans".
func (SessionScanDTO) TableName() string {
	return "session_scans"
}

func fromDomain(aggregate *session.Session) SessionDTO {
	scans := aggregate.Scans()
	scanDTOs := make([]SessionScanDTO, 0, len(scans))
	for _, record := range scans {
		scanDTOs = append(scanDTOs, SessionScanDTO{
			SessionKey:    aggregate.Key().String(),
			ParcelID:      record.ParcelID.Bytes(),
			CheckpointSeq: record.CheckpointSeq,
			ScannedAt:     record.At,
		})
	}

	return SessionDTO{
		Key:        aggregate.Key().String(),
		Employee:   aggregate.Employee(),
		Location:   aggregate.Location(),
		State:      int(aggregate.State()),
		DeviceName: aggregate.DeviceName(),
		CreatedAt:  aggregate.CreatedAt(),
		UpdatedAt:  aggregate.UpdatedAt(),
		Scans:      scanDTOs,
	}
}

func toDomain(dto SessionDTO) (*session.Session, error) {
	key, err := kernel.SessionKeyFromString(dto.Key)
	if err != nil {
		return nil, err
	}

	scans := make([]session.ScanRecord, 0, len(dto.Scans))
	for _, scanDTO := range dto.Scans {
		parcelID, idErr := kernel.UUIDFromBytes(scanDTO.ParcelID[:])
		if idErr != nil {
			return nil, idErr
		}
		scans = append(scans, session.ScanRecord{
			ParcelID:      parcelID,
			CheckpointSeq: scanDTO.CheckpointSeq,
			At:            scanDTO.ScannedAt,
		})
	}

	return session.RestoreSession(
		key,
		dto.Employee,
		dto.Location,
		session.State(dto.State),
		dto.DeviceName,
		dto.CreatedAt,
		dto.UpdatedAt,
		scans,
	)
}
