package parcel

import (
	"time"

	"parceltrack/internal/pkg/errs"
)

// Checkpoint is one recorded event in a parcel's journey. Checkpoints are
// immutable once appended; Seq is the 1-based position in the parcel's
// history and never changes.
type Checkpoint struct {
	seq            int
	locationName   string
	scannedBy      string
	notes          string
	timestamp      time.Time
	internalStatus Action
	publicStatus   PublicStatus
}

// RestoreCheckpoint rebuilds a checkpoint from persistence. It validates the
// structural invariants but trusts the stored ordering; the owning parcel
// re-checks sequence contiguity on restore.
func RestoreCheckpoint(
	seq int,
	locationName string,
	scannedBy string,
	notes string,
	timestamp time.Time,
	internalStatus Action,
	publicStatus PublicStatus,
) (Checkpoint, error) {
	if seq < 1 {
		return Checkpoint{}, errs.NewValueIsInvalidError("checkpoint seq")
	}
	if locationName == "" {
		return Checkpoint{}, errs.NewValueIsRequiredError("locationName")
	}
	if publicStatus == "" {
		return Checkpoint{}, errs.NewValueIsRequiredError("publicStatus")
	}
	return Checkpoint{
		seq:            seq,
		locationName:   locationName,
		scannedBy:      scannedBy,
		notes:          notes,
		timestamp:      timestamp,
		internalStatus: internalStatus,
		publicStatus:   publicStatus,
	}, nil
}

// Seq returns the 1-based position of the checkpoint within its parcel.
func (c Checkpoint) Seq() int {
	return c.seq
}

// LocationName returns where the checkpoint was recorded.
func (c Checkpoint) LocationName() string {
	return c.locationName
}

// ScannedBy returns the employee who recorded the checkpoint.
// Empty for the synthetic first checkpoint.
func (c Checkpoint) ScannedBy() string {
	return c.scannedBy
}

// Notes returns the free-form notes attached to the checkpoint.
func (c Checkpoint) Notes() string {
	return c.notes
}

// Timestamp returns the capture time of the checkpoint.
func (c Checkpoint) Timestamp() time.Time {
	return c.timestamp
}

// InternalStatus returns the raw action token that produced this checkpoint.
func (c Checkpoint) InternalStatus() Action {
	return c.internalStatus
}

// PublicStatus returns the derived customer-facing label.
func (c Checkpoint) PublicStatus() PublicStatus {
	return c.publicStatus
}
