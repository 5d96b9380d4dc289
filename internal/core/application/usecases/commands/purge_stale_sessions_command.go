package commands

import (
	"errors"
	"time"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrPurgeStaleSessionsCommandIsNotConstructed = errors.New(
	"PurgeStaleSessionsCommand must be created via NewPurgeStaleSessionsCommand constructor",
)

// PurgeStaleSessionsCommand removes sessions not touched since the cutoff.
type PurgeStaleSessionsCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Time

	guard guard.ConstructorGuard
}

// NewPurgeStaleSessionsCommand creates a stale-session sweep command.
func NewPurgeStaleSessionsCommand(olderThan time.Time) (PurgeStaleSessionsCommand, error) {
	cmd := PurgeStaleSessionsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOlderThan(olderThan); err != nil {
		return PurgeStaleSessionsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PurgeStaleSessionsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeStaleSessionsCommandIsNotConstructed)
}

// OlderThan returns the staleness cutoff.
func (c PurgeStaleSessionsCommand) OlderThan() time.Time {
	return c.olderThan
}

func (c *PurgeStaleSessionsCommand) setOlderThan(olderThan time.Time) error {
	if olderThan.IsZero() {
		return errs.NewValueIsRequiredError("olderThan")
	}

	c.olderThan = olderThan
	return nil
}
