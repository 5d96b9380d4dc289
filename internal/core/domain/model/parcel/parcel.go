package parcel

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrParcelIsNotConstructed is returned when a Parcel instance was not created
// through NewParcel or RestoreParcel. This ensures all parcels are validated.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

// FrontDeskLocation is the location recorded on the synthetic first checkpoint.
const FrontDeskLocation = "Front Desk"

// Parcel is the aggregate root for a tracked package. It owns the parcel's
// identity, the immutable metadata captured at creation, and the append-only
// checkpoint history from which the current public status is derived.
//
// Invariants:
//   - len(checkpoints) >= 1 and checkpoints[i].Seq() == i+1 for all i
//   - currentStatus equals the public status of the last checkpoint
//   - checkpoint timestamps are monotonically non-decreasing
type Parcel struct {
	id             kernel.UUID
	trackingNumber kernel.TrackingNumber
	customerName   string
	recipientName  string
	destination    string
	details        string
	currentAction  Action
	currentStatus  PublicStatus
	checkpoints    []Checkpoint

	isConstructed bool
}

// NewParcel creates a parcel at the front desk. It validates the required
// metadata, then synthesizes checkpoint #1 with the "Order Created" public
// status at the given creation time. details may be empty.
func NewParcel(
	id kernel.UUID,
	trackingNumber kernel.TrackingNumber,
	customerName string,
	recipientName string,
	destination string,
	details string,
	createdAt time.Time,
) (*Parcel, error) {
	if err := errors.Join(
		id.Validate(),
		trackingNumber.Validate(),
		requireField("customerName", customerName),
		requireField("recipientName", recipientName),
		requireField("destination", destination),
	); err != nil {
		return nil, err
	}

	first, err := RestoreCheckpoint(1, FrontDeskLocation, "", "", createdAt, ActionCreated, StatusOrderCreated)
	if err != nil {
		return nil, err
	}

	return &Parcel{
		id:             id,
		trackingNumber: trackingNumber,
		customerName:   customerName,
		recipientName:  recipientName,
		destination:    destination,
		details:        details,
		currentAction:  ActionCreated,
		currentStatus:  StatusOrderCreated,
		checkpoints:    []Checkpoint{first},
		isConstructed:  true,
	}, nil
}

// RestoreParcel rebuilds a parcel from persistence. The checkpoint slice must
// be non-empty and gapless in ascending Seq order; the current status is
// derived from the last checkpoint rather than trusted from the caller.
func RestoreParcel(
	id kernel.UUID,
	trackingNumber kernel.TrackingNumber,
	customerName string,
	recipientName string,
	destination string,
	details string,
	checkpoints []Checkpoint,
) (*Parcel, error) {
	if err := errors.Join(
		id.Validate(),
		trackingNumber.Validate(),
		requireField("customerName", customerName),
		requireField("recipientName", recipientName),
		requireField("destination", destination),
	); err != nil {
		return nil, err
	}

	if len(checkpoints) == 0 {
		return nil, errs.NewValueIsRequiredError("checkpoints")
	}
	for i, cp := range checkpoints {
		if cp.Seq() != i+1 {
			return nil, errs.NewValueIsInvalidError("checkpoint sequence")
		}
	}

	last := checkpoints[len(checkpoints)-1]
	return &Parcel{
		id:             id,
		trackingNumber: trackingNumber,
		customerName:   customerName,
		recipientName:  recipientName,
		destination:    destination,
		details:        details,
		currentAction:  last.InternalStatus(),
		currentStatus:  last.PublicStatus(),
		checkpoints:    append([]Checkpoint(nil), checkpoints...),
		isConstructed:  true,
	}, nil
}

// Validate ensures the Parcel instance was properly constructed.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by identity.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier (the barcode payload).
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingNumber returns the human-presentable secondary identifier.
func (p *Parcel) TrackingNumber() kernel.TrackingNumber {
	return p.trackingNumber
}

// CustomerName returns the sender recorded at creation.
func (p *Parcel) CustomerName() string {
	return p.customerName
}

// RecipientName returns the recipient recorded at creation.
func (p *Parcel) RecipientName() string {
	return p.recipientName
}

// Destination returns the delivery destination recorded at creation.
func (p *Parcel) Destination() string {
	return p.destination
}

// Details returns the opaque metadata recorded at creation, possibly empty.
func (p *Parcel) Details() string {
	return p.details
}

// CurrentInternalStatus returns the raw action of the last checkpoint.
func (p *Parcel) CurrentInternalStatus() Action {
	return p.currentAction
}

// CurrentPublicStatus returns the customer-facing label of the last checkpoint.
func (p *Parcel) CurrentPublicStatus() PublicStatus {
	return p.currentStatus
}

// Checkpoints returns a copy of the checkpoint history in insertion order.
func (p *Parcel) Checkpoints() []Checkpoint {
	return append([]Checkpoint(nil), p.checkpoints...)
}

// LastCheckpoint returns the most recent checkpoint.
func (p *Parcel) LastCheckpoint() Checkpoint {
	return p.checkpoints[len(p.checkpoints)-1]
}

// CreatedAt returns the capture time of the synthetic first checkpoint.
func (p *Parcel) CreatedAt() time.Time {
	return p.checkpoints[0].Timestamp()
}

// AppendCheckpoint records a scan against the parcel: it derives the public
// status from the action, appends a checkpoint with the next sequence number,
// and updates the current status. Timestamps never go backwards: a capture
// time earlier than the last checkpoint's is clamped to it.
//
// Any action is accepted from any prior status; the workflow graph is open.
// Returns the appended checkpoint.
func (p *Parcel) AppendCheckpoint(
	action Action,
	locationName string,
	scannedBy string,
	notes string,
	at time.Time,
) (Checkpoint, error) {
	if err := errors.Join(
		action.Validate(),
		requireField("location", locationName),
		requireField("employee", scannedBy),
	); err != nil {
		return Checkpoint{}, err
	}

	if last := p.LastCheckpoint().Timestamp(); at.Before(last) {
		at = last
	}

	publicStatus := MapActionToPublicStatus(action)
	cp, err := RestoreCheckpoint(len(p.checkpoints)+1, locationName, scannedBy, notes, at, action, publicStatus)
	if err != nil {
		return Checkpoint{}, err
	}

	p.checkpoints = append(p.checkpoints, cp)
	p.currentAction = action
	p.currentStatus = publicStatus
	return cp, nil
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
