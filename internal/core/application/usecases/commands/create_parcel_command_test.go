package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateParcelCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewCreateParcelCommand("Alice", "Bob", "NYC", "fragile")
	require.NoError(t, err)
	assert.Equal(t, "Alice", cmd.CustomerName())
	assert.Equal(t, "Bob", cmd.RecipientName())
	assert.Equal(t, "NYC", cmd.Destination())
	assert.Equal(t, "fragile", cmd.Details())
}

func TestNewCreateParcelCommand_DetailsOptional(t *testing.T) {
	cmd, err := commands.NewCreateParcelCommand("Alice", "Bob", "NYC", "")
	require.NoError(t, err)
	assert.Empty(t, cmd.Details())
}

func TestNewCreateParcelCommand_MissingFields(t *testing.T) {
	_, err := commands.NewCreateParcelCommand("", "Bob", "NYC", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateParcelCommand("Alice", "", "NYC", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCreateParcelCommand("Alice", "Bob", "", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestCreateParcelCommand_ZeroValueFailsValidation(t *testing.T) {
	cmd := commands.CreateParcelCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateParcelCommandIsNotConstructed)
}
