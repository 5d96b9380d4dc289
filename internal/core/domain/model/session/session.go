package session

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

// ErrSessionIsNotConstructed is returned when a Session instance was not
// created through NewSession or RestoreSession.
var ErrSessionIsNotConstructed = errors.New("Session must be created via NewSession or RestoreSession")

// ScanRecord is one entry of a session's best-effort scan history, kept for
// live monitoring of what a paired device has scanned.
type ScanRecord struct {
	ParcelID      kernel.UUID
	CheckpointSeq int
	At            time.Time
}

// Session is the aggregate root for a scanning session. The employee and
// location are fixed at start; the device name is set on join and may be
// reassigned until the session is connected. UpdatedAt advances on every
// mutation and drives the stale-session sweep.
type Session struct {
	key        kernel.SessionKey
	employee   string
	location   string
	state      State
	deviceName string
	createdAt  time.Time
	updatedAt  time.Time
	scans      []ScanRecord

	isConstructed bool
}

// NewSession creates a session in the Pending state.
func NewSession(key kernel.SessionKey, employee, location string, now time.Time) (*Session, error) {
	if err := errors.Join(
		key.Validate(),
		requireField("employee", employee),
		requireField("location", location),
	); err != nil {
		return nil, err
	}

	return &Session{
		key:           key,
		employee:      employee,
		location:      location,
		state:         Pending,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestoreSession rebuilds a session from persistence.
func RestoreSession(
	key kernel.SessionKey,
	employee string,
	location string,
	state State,
	deviceName string,
	createdAt time.Time,
	updatedAt time.Time,
	scans []ScanRecord,
) (*Session, error) {
	if err := errors.Join(
		key.Validate(),
		requireField("employee", employee),
		requireField("location", location),
		state.Validate(),
	); err != nil {
		return nil, err
	}

	return &Session{
		key:           key,
		employee:      employee,
		location:      location,
		state:         state,
		deviceName:    deviceName,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		scans:         append([]ScanRecord(nil), scans...),
		isConstructed: true,
	}, nil
}

// Validate ensures the Session instance was properly constructed.
func (s *Session) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSessionIsNotConstructed
	}
	return nil
}

// Key returns the session's pairing key.
func (s *Session) Key() kernel.SessionKey {
	return s.key
}

// Employee returns the stationary actor who started the session.
func (s *Session) Employee() string {
	return s.employee
}

// Location returns where the session was started.
func (s *Session) Location() string {
	return s.location
}

// State returns the current pairing state.
func (s *Session) State() State {
	return s.state
}

// DeviceName returns the name announced by the joined device, empty before
// any join.
func (s *Session) DeviceName() string {
	return s.deviceName
}

// CreatedAt returns when the session was started.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// UpdatedAt returns when the session was last mutated.
func (s *Session) UpdatedAt() time.Time {
	return s.updatedAt
}

// Scans returns a copy of the session's scan history in insertion order.
func (s *Session) Scans() []ScanRecord {
	return append([]ScanRecord(nil), s.scans...)
}

// IsAuthorized reports whether the session's device may submit scans.
func (s *Session) IsAuthorized() bool {
	return s.state == Connected
}

// Join records a device against the session. A Pending session moves to
// Queued; a Queued session keeps its state but the device name may be
// reassigned. Joining a Connected or Ended session re-announces the device
// name without changing state.
func (s *Session) Join(deviceName string, at time.Time) error {
	if err := requireField("deviceName", deviceName); err != nil {
		return err
	}

	s.deviceName = deviceName
	if s.state == Pending {
		s.state = Queued
	}
	s.updatedAt = at
	return nil
}

// Connect authorizes the session's device to submit scans. The transition is
// unconditional and idempotent: connecting an already-connected session is a
// no-op success. deviceName is optional and, when non-empty, re-announces
// the device.
func (s *Session) Connect(deviceName string, at time.Time) {
	if deviceName != "" {
		s.deviceName = deviceName
	}
	s.state = Connected
	s.updatedAt = at
}

// End moves the session to its terminal state. Idempotent.
func (s *Session) End(at time.Time) {
	s.state = Ended
	s.updatedAt = at
}

// RecordScan appends a checkpoint reference to the session's scan history.
func (s *Session) RecordScan(parcelID kernel.UUID, checkpointSeq int, at time.Time) {
	s.scans = append(s.scans, ScanRecord{
		ParcelID:      parcelID,
		CheckpointSeq: checkpointSeq,
		At:            at,
	})
	s.updatedAt = at
}

// IsIdleSince reports whether the session has not been touched since cutoff.
// The stale sweep uses this to end abandoned sessions.
func (s *Session) IsIdleSince(cutoff time.Time) bool {
	return s.updatedAt.Before(cutoff)
}

func requireField(name, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
