// Package queries contains read-only operations for the tracking service.
// Query handlers bypass the domain model and read directly from storage,
// implementing the read side of the CQRS architecture.
package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrGetParcelQueryIsNotConstructed = errors.New(
	"GetParcelQuery must be created via NewGetParcelQueryByID or NewGetParcelQueryByTrackingNumber constructor",
)

// GetParcelQuery retrieves a single parcel with its full checkpoint history,
// addressed either by the parcel id (the barcode payload) or by the
// customer-facing tracking number.
type GetParcelQuery struct {
	id             kernel.UUID
	trackingNumber kernel.TrackingNumber
	byTracking     bool

	guard guard.ConstructorGuard
}

// NewGetParcelQueryByID creates a lookup by parcel id.
func NewGetParcelQueryByID(id kernel.UUID) (GetParcelQuery, error) {
	if err := id.Validate(); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{
		id:    id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewGetParcelQueryByTrackingNumber creates a lookup by tracking number.
func NewGetParcelQueryByTrackingNumber(trackingNumber kernel.TrackingNumber) (GetParcelQuery, error) {
	if err := trackingNumber.Validate(); err != nil {
		return GetParcelQuery{}, err
	}

	return GetParcelQuery{
		trackingNumber: trackingNumber,
		byTracking:     true,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

// ByTrackingNumber reports whether the lookup uses the tracking number.
func (q GetParcelQuery) ByTrackingNumber() bool {
	return q.byTracking
}

// ID returns the parcel id for id lookups.
func (q GetParcelQuery) ID() kernel.UUID {
	return q.id
}

// TrackingNumber returns the tracking number for tracking-number lookups.
func (q GetParcelQuery) TrackingNumber() kernel.TrackingNumber {
	return q.trackingNumber
}

// CheckpointResponse is one entry of a parcel's journey in the read model.
type CheckpointResponse struct {
	Order          int
	LocationName   string
	ScannedBy      string
	Notes          string
	Timestamp      time.Time
	InternalStatus string
	PublicStatus   string
}

// GetParcelQueryResponse is the read model returned to lookup clients.
type GetParcelQueryResponse struct {
	ID                  kernel.UUID
	TrackingNumber      string
	CustomerName        string
	RecipientName       string
	Destination         string
	Details             string
	CurrentPublicStatus string
	Checkpoints         []CheckpointResponse
}

func (q GetParcelQuery) notFoundError() error {
	if q.byTracking {
		return errs.NewObjectNotFoundError("trackingNumber", q.trackingNumber.String())
	}
	return errs.NewObjectNotFoundError("parcelId", q.id.String())
}
