package queries

import (
	"errors"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrGetSessionQueryIsNotConstructed = errors.New(
	"GetSessionQuery must be created via NewGetSessionQuery constructor",
)

// GetSessionQuery retrieves a scanning session with its scan history for
// live monitoring.
type GetSessionQuery struct {
	sessionKey kernel.SessionKey

	guard guard.ConstructorGuard
}

// NewGetSessionQuery creates a session lookup.
func NewGetSessionQuery(sessionKey kernel.SessionKey) (GetSessionQuery, error) {
	if err := sessionKey.Validate(); err != nil {
		return GetSessionQuery{}, err
	}

	return GetSessionQuery{
		sessionKey: sessionKey,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSessionQuery) Validate() error {
	return q.guard.Validate(ErrGetSessionQueryIsNotConstructed)
}

// SessionKey returns the key of the session to look up.
func (q GetSessionQuery) SessionKey() kernel.SessionKey {
	return q.sessionKey
}

// ScanHistoryResponse is one recorded scan in the session read model.
type ScanHistoryResponse struct {
	ParcelID      kernel.UUID
	CheckpointSeq int
	At            time.Time
}

// GetSessionQueryResponse is the read model for the live-monitor endpoint.
type GetSessionQueryResponse struct {
	SessionKey string
	Employee   string
	Location   string
	State      string
	DeviceName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Scans      []ScanHistoryResponse
}
