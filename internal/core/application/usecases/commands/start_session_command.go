package commands

import (
	"errors"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrStartSessionCommandIsNotConstructed = errors.New(
	"StartSessionCommand must be created via NewStartSessionCommand constructor",
)

// StartSessionCommand opens a new scanning session for a front-desk
// employee at a location.
type StartSessionCommand struct { //nolint:recvcheck //using for validation
	employee string
	location string

	guard guard.ConstructorGuard
}

// NewStartSessionCommand creates a session-start command.
func NewStartSessionCommand(employee, location string) (StartSessionCommand, error) {
	cmd := StartSessionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEmployee(employee),
		cmd.setLocation(location),
	); err != nil {
		return StartSessionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c StartSessionCommand) Validate() error {
	return c.guard.Validate(ErrStartSessionCommandIsNotConstructed)
}

// Employee returns who is opening the session.
func (c StartSessionCommand) Employee() string {
	return c.employee
}

// Location returns where the session is opened.
func (c StartSessionCommand) Location() string {
	return c.location
}

func (c *StartSessionCommand) setEmployee(employee string) error {
	if employee == "" {
		return errs.NewValueIsRequiredError("employee")
	}

	c.employee = employee
	return nil
}

func (c *StartSessionCommand) setLocation(location string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}

	c.location = location
	return nil
}
