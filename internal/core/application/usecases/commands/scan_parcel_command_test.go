package commands_test

import (
	"testing"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScanParcelCommand_ValidInput(t *testing.T) {
	key := kernel.GenerateSessionKey()
	id := kernel.NewUUID()
	cmd, err := commands.NewScanParcelCommand(key, id, parcel.ActionOutForDelivery, "Dock3", "emp1", "left gate")
	require.NoError(t, err)
	assert.True(t, key.IsEqual(cmd.SessionKey()))
	assert.True(t, id.IsEqual(cmd.ParcelID()))
	assert.Equal(t, parcel.ActionOutForDelivery, cmd.Action())
	assert.Equal(t, "Dock3", cmd.Location())
	assert.Equal(t, "emp1", cmd.Employee())
	assert.Equal(t, "left gate", cmd.Notes())
}

func TestNewScanParcelCommand_NotesOptional(t *testing.T) {
	cmd, err := commands.NewScanParcelCommand(
		kernel.GenerateSessionKey(), kernel.NewUUID(), parcel.ActionArrivedAtWarehouse, "Hub", "emp1", "")
	require.NoError(t, err)
	assert.Empty(t, cmd.Notes())
}

func TestNewScanParcelCommand_MissingFields(t *testing.T) {
	key := kernel.GenerateSessionKey()
	id := kernel.NewUUID()

	_, err := commands.NewScanParcelCommand(kernel.SessionKey{}, id, parcel.ActionOutForDelivery, "Dock3", "emp1", "")
	require.Error(t, err)

	_, err = commands.NewScanParcelCommand(key, kernel.UUID{}, parcel.ActionOutForDelivery, "Dock3", "emp1", "")
	require.Error(t, err)

	_, err = commands.NewScanParcelCommand(key, id, parcel.Action(""), "Dock3", "emp1", "")
	require.Error(t, err)

	_, err = commands.NewScanParcelCommand(key, id, parcel.ActionOutForDelivery, "", "emp1", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewScanParcelCommand(key, id, parcel.ActionOutForDelivery, "Dock3", "", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestScanParcelCommand_ZeroValueFailsValidation(t *testing.T) {
	cmd := commands.ScanParcelCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrScanParcelCommandIsNotConstructed)
}
