package commands

import (
	"errors"

	"parceltrack/internal/pkg/errs"
	"parceltrack/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelCommand represents a front-desk request to register a new
// package. details is optional opaque metadata; the remaining fields are
// required.
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	customerName  string
	recipientName string
	destination   string
	details       string

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand creates a command to register a new package.
// Validates that customer, recipient and destination are not empty.
func NewCreateParcelCommand(customerName, recipientName, destination, details string) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerName(customerName),
		cmd.setRecipientName(recipientName),
		cmd.setDestination(destination),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// CustomerName returns the sender's name.
func (c CreateParcelCommand) CustomerName() string {
	return c.customerName
}

// RecipientName returns the recipient's name.
func (c CreateParcelCommand) RecipientName() string {
	return c.recipientName
}

// Destination returns the delivery destination.
func (c CreateParcelCommand) Destination() string {
	return c.destination
}

// Details returns the optional opaque metadata, possibly empty.
func (c CreateParcelCommand) Details() string {
	return c.details
}

func (c *CreateParcelCommand) setCustomerName(customerName string) error {
	if customerName == "" {
		return errs.NewValueIsRequiredError("customerName")
	}

	c.customerName = customerName
	return nil
}

func (c *CreateParcelCommand) setRecipientName(recipientName string) error {
	if recipientName == "" {
		return errs.NewValueIsRequiredError("recipientName")
	}

	c.recipientName = recipientName
	return nil
}

func (c *CreateParcelCommand) setDestination(destination string) error {
	if destination == "" {
		return errs.NewValueIsRequiredError("destination")
	}

	c.destination = destination
	return nil
}
