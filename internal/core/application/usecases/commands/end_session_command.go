package commands

import (
	"errors"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/guard"
)

var ErrEndSessionCommandIsNotConstructed = errors.New(
	"EndSessionCommand must be created via NewEndSessionCommand constructor",
)

// EndSessionCommand closes a scanning session and removes it from the
// active set.
type EndSessionCommand struct { //nolint:recvcheck //using for validation
	sessionKey kernel.SessionKey

	guard guard.ConstructorGuard
}

// NewEndSessionCommand creates a session-end command.
func NewEndSessionCommand(sessionKey kernel.SessionKey) (EndSessionCommand, error) {
	cmd := EndSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setSessionKey(sessionKey); err != nil {
		return EndSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EndSessionCommand) Validate() error {
	return c.guard.Validate(ErrEndSessionCommandIsNotConstructed)
}

// SessionKey returns the key of the session to end.
func (c EndSessionCommand) SessionKey() kernel.SessionKey {
	return c.sessionKey
}

func (c *EndSessionCommand) setSessionKey(sessionKey kernel.SessionKey) error {
	if err := sessionKey.Validate(); err != nil {
		return err
	}

	c.sessionKey = sessionKey
	return nil
}
