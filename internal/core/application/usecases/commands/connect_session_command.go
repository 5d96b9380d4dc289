package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrConnectSessionCommandIsNotConstructed = errors.New(
	"ConnectSessionCommand must be created via NewConnectSessionCommand constructor",
)

// ConnectSessionCommand confirms the pairing and authorizes the session for
// scanning. deviceName is optional; when set it overrides the announced one.
type ConnectSessionCommand struct { //nolint:recvcheck //using for validation
	sessionKey kernel.SessionKey
	deviceName string

	guard guard.ConstructorGuard
}

// NewConnectSessionCommand creates a pairing-confirmation command.
func NewConnectSessionCommand(sessionKey kernel.SessionKey, deviceName string) (ConnectSessionCommand, error) {
	cmd := ConnectSessionCommand{
		deviceName: deviceName,
		guard:      guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionKey(sessionKey); err != nil {
		return ConnectSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConnectSessionCommand) Validate() error {
	return c.guard.Validate(ErrConnectSessionCommandIsNotConstructed)
}

// SessionKey returns the target session's key.
func (c ConnectSessionCommand) SessionKey() kernel.SessionKey {
	return c.sessionKey
}

// DeviceName returns the optional device name, possibly empty.
func (c ConnectSessionCommand) DeviceName() string {
	return c.deviceName
}

func (c *ConnectSessionCommand) setSessionKey(sessionKey kernel.SessionKey) error {
	if err := sessionKey.Validate(); err != nil {
		return err
	}

	c.sessionKey = sessionKey
	return nil
}
