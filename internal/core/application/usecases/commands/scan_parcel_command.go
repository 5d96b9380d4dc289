package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrScanParcelCommandIsNotConstructed = errors.New(
	"ScanParcelCommand must be created via NewScanParcelCommand constructor",
)

// ScanParcelCommand represents a checkpoint scan submitted by a paired
// device: which session is scanning, which parcel, and the reported action.
type ScanParcelCommand struct { //nolint:recvcheck //using for validation
	sessionKey kernel.SessionKey
	parcelID   kernel.UUID
	action     parcel.Action
	location   string
	employee   string
	notes      string

	guard guard.ConstructorGuard
}

// NewScanParcelCommand creates a scan command. notes is optional; all other
// fields are required.
func NewScanParcelCommand(
	sessionKey kernel.SessionKey,
	parcelID kernel.UUID,
	action parcel.Action,
	location string,
	employee string,
	notes string,
) (ScanParcelCommand, error) {
	cmd := ScanParcelCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionKey(sessionKey),
		cmd.setParcelID(parcelID),
		cmd.setAction(action),
		cmd.setLocation(location),
		cmd.setEmployee(employee),
	); err != nil {
		return ScanParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ScanParcelCommand) Validate() error {
	return c.guard.Validate(ErrScanParcelCommandIsNotConstructed)
}

// SessionKey returns the scanning session's key.
func (c ScanParcelCommand) SessionKey() kernel.SessionKey {
	return c.sessionKey
}

// ParcelID returns the scanned parcel's identifier.
func (c ScanParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

// Action returns the reported action token.
func (c ScanParcelCommand) Action() parcel.Action {
	return c.action
}

// Location returns where the scan happened.
func (c ScanParcelCommand) Location() string {
	return c.location
}

// Employee returns who performed the scan.
func (c ScanParcelCommand) Employee() string {
	return c.employee
}

// Notes returns the optional free-form notes, possibly empty.
func (c ScanParcelCommand) Notes() string {
	return c.notes
}

func (c *ScanParcelCommand) setSessionKey(sessionKey kernel.SessionKey) error {
	if err := sessionKey.Validate(); err != nil {
		return err
	}

	c.sessionKey = sessionKey
	return nil
}

func (c *ScanParcelCommand) setParcelID(parcelID kernel.UUID) error {
	if err := parcelID.Validate(); err != nil {
		return err
	}

	c.parcelID = parcelID
	return nil
}

func (c *ScanParcelCommand) setAction(action parcel.Action) error {
	if err := action.Validate(); err != nil {
		return err
	}

	c.action = action
	return nil
}

func (c *ScanParcelCommand) setLocation(location string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}

	c.location = location
	return nil
}

func (c *ScanParcelCommand) setEmployee(employee string) error {
	if employee == "" {
		return errs.NewValueIsRequiredError("employee")
	}

	c.employee = employee
	return nil
}
