package queries

import (
	"context"
	"database/sql"
	"time"

	"parceltrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelQueryHandler reads a parcel and its checkpoint history straight
// from the database, skipping the aggregate.
type GetParcelQueryHandler struct {
	db *gorm.DB
}

// NewGetParcelQueryHandler creates a handler for parcel lookups.
func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle executes the lookup. Returns ErrObjectNotFound when no parcel
// matches the requested key.
func (h GetParcelQueryHandler) Handle(
	ctx context.Context,
	query GetParcelQuery,
) (GetParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetParcelQueryResponse{}, err
	}

	resp, err := h.readParcel(ctx, query)
	if err != nil {
		return GetParcelQueryResponse{}, err
	}

	checkpoints, err := h.readCheckpoints(ctx, resp.ID)
	if err != nil {
		return GetParcelQueryResponse{}, err
	}
	resp.Checkpoints = checkpoints
	if len(checkpoints) > 0 {
		resp.CurrentPublicStatus = checkpoints[len(checkpoints)-1].PublicStatus
	}

	return resp, nil
}

func (h GetParcelQueryHandler) readParcel(ctx context.Context, query GetParcelQuery) (GetParcelQueryResponse, error) {
	where, arg := "id = ?", any(query.ID().Bytes())
	if query.ByTrackingNumber() {
		where, arg = "tracking_number = ?", any(query.TrackingNumber().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			customer_name,
			recipient_name,
			destination,
			details
		FROM parcels
		WHERE `+where, arg).Rows()
	if err != nil {
		return GetParcelQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetParcelQueryResponse{}, err
		}
		return GetParcelQueryResponse{}, query.notFoundError()
	}

	var resp GetParcelQueryResponse
	var id uuid.UUID
	var details sql.NullString

	err = rows.Scan(
		&id,
		&resp.TrackingNumber,
		&resp.CustomerName,
		&resp.RecipientName,
		&resp.Destination,
		&details,
	)
	if err != nil {
		return GetParcelQueryResponse{}, err
	}

	parcelID, idErr := kernel.UUIDFromBytes(id[:])
	if idErr != nil {
		return GetParcelQueryResponse{}, idErr
	}
	resp.ID = parcelID
	resp.Details = details.String

	return resp, rows.Err()
}

func (h GetParcelQueryHandler) readCheckpoints(ctx context.Context, id kernel.UUID) ([]CheckpointResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			seq,
			location_name,
			scanned_by,
			notes,
			captured_at,
			internal_status,
			public_status
		FROM checkpoints
		WHERE parcel_id = ?
		ORDER BY seq
	`, id.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	checkpoints := make([]CheckpointResponse, 0)
	for rows.Next() {
		var cp CheckpointResponse
		var scannedBy, notes sql.NullString
		var capturedAt time.Time

		err = rows.Scan(
			&cp.Order,
			&cp.LocationName,
			&scannedBy,
			&notes,
			&capturedAt,
			&cp.InternalStatus,
			&cp.PublicStatus,
		)
		if err != nil {
			return nil, err
		}

		cp.ScannedBy = scannedBy.String
		cp.Notes = notes.String
		cp.Timestamp = capturedAt
		checkpoints = append(checkpoints, cp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return checkpoints, nil
}
