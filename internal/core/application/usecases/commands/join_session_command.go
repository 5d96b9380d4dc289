package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrJoinSessionCommandIsNotConstructed = errors.New(
	"JoinSessionCommand must be created via NewJoinSessionCommand constructor",
)

// JoinSessionCommand announces a scanner device against a session.
type JoinSessionCommand struct { //nolint:recvcheck //using for validation
	sessionKey kernel.SessionKey
	deviceName string

	guard guard.ConstructorGuard
}

// NewJoinSessionCommand creates a device-announce command.
func NewJoinSessionCommand(sessionKey kernel.SessionKey, deviceName string) (JoinSessionCommand, error) {
	cmd := JoinSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setSessionKey(sessionKey),
		cmd.setDeviceName(deviceName),
	); err != nil {
		return JoinSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c JoinSessionCommand) Validate() error {
	return c.guard.Validate(ErrJoinSessionCommandIsNotConstructed)
}

// SessionKey returns the target session's key.
func (c JoinSessionCommand) SessionKey() kernel.SessionKey {
	return c.sessionKey
}

// DeviceName returns the announcing device's name.
func (c JoinSessionCommand) DeviceName() string {
	return c.deviceName
}

func (c *JoinSessionCommand) setSessionKey(sessionKey kernel.SessionKey) error {
	if err := sessionKey.Validate(); err != nil {
		return err
	}

	c.sessionKey = sessionKey
	return nil
}

func (c *JoinSessionCommand) setDeviceName(deviceName string) error {
	if deviceName == "" {
		return errs.NewValueIsRequiredError("deviceName")
	}

	c.deviceName = deviceName
	return nil
}
