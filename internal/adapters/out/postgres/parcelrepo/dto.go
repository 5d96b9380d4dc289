// Package parcelrepo provides data transfer objects and mapping functions
// for parcel persistence. Parcels and their checkpoints live in two tables;
// the checkpoint table is append-only and keyed by (parcel_id, seq).
package parcelrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. The tracking number carries a unique index so identifier
// collisions surface as duplicate-key errors.
type ParcelDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TrackingNumber string          `gorm:"uniqueIndex;size:16"`
	CustomerName   string          `gorm:"size:255"`
	RecipientName  string          `gorm:"size:255"`
	Destination    string          `gorm:"size:255"`
	Details        string          `gorm:"size:1024"`
	Checkpoints    []CheckpointDTO `gorm:"foreignKey:ParcelID;references:ID"`
}

// TableName overrides GORM's default naming to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// CheckpointDTO represents one row of a parcel's journey. The composite
// primary key (parcel_id, seq) makes double-inserting a sequence number a
// duplicate-key error instead of a silent corruption.
type CheckpointDTO struct {
	ParcelID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq            int       `gorm:"primaryKey"`
	LocationName   string    `gorm:"size:255"`
	ScannedBy      string    `gorm:"size:255"`
	Notes          string    `gorm:"size:1024"`
	CapturedAt     time.Time
	InternalStatus string `gorm:"size:64"`
	PublicStatus   string `gorm:"size:64"`
}

// TableName overrides GORM's default naming to use "checkpoints".
func (CheckpointDTO) TableName() string {
	return "checkpoints"
}

func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	checkpoints := aggregate.Checkpoints()
	dtos := make([]CheckpointDTO, 0, len(checkpoints))
	for _, cp := range checkpoints {
		dtos = append(dtos, CheckpointDTO{
			ParcelID:       aggregate.ID().Bytes(),
			Seq:            cp.Seq(),
			LocationName:   cp.LocationName(),
			ScannedBy:      cp.ScannedBy(),
			Notes:          cp.Notes(),
			CapturedAt:     cp.Timestamp(),
			InternalStatus: cp.InternalStatus().String(),
			PublicStatus:   cp.PublicStatus().String(),
		})
	}

	return ParcelDTO{
		ID:             aggregate.ID().Bytes(),
		TrackingNumber: aggregate.TrackingNumber().String(),
		CustomerName:   aggregate.CustomerName(),
		RecipientName:  aggregate.RecipientName(),
		Destination:    aggregate.Destination(),
		Details:        aggregate.Details(),
		Checkpoints:    dtos,
	}
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingNumber, err := kernel.TrackingNumberFromString(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	checkpoints := make([]parcel.Checkpoint, 0, len(dto.Checkpoints))
	for _, cpDTO := range dto.Checkpoints {
		cp, cpErr := parcel.RestoreCheckpoint(
			cpDTO.Seq,
			cpDTO.LocationName,
			cpDTO.ScannedBy,
			cpDTO.Notes,
			cpDTO.CapturedAt,
			parcel.Action(cpDTO.InternalStatus),
			parcel.PublicStatus(cpDTO.PublicStatus),
		)
		if cpErr != nil {
			return nil, cpErr
		}
		checkpoints = append(checkpoints, cp)
	}

	return parcel.RestoreParcel(
		id,
		trackingNumber,
		dto.CustomerName,
		dto.RecipientName,
		dto.Destination,
		dto.Details,
		checkpoints,
	)
}
