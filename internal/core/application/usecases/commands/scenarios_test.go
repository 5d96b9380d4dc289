package commands_test

import (
	"regexp"
	"testing"

	"parceltrack/internal/adapters/out/memory"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/session"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end flows over the in-memory store, front desk to delivery.

func TestScenario_RegisterAndLookup(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	createHandler := commands.NewCreateParcelCommandHandler(memoryParcelUoWFactory{store: store})
	cmd, err := commands.NewCreateParcelCommand("Alice", "Bob", "NYC", "")
	require.NoError(t, err)

	created, err := createHandler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^TRK-\d{6}$`), created.TrackingNumber().String())

	uow := store.NewUnitOfWork()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	found, err := uow.ParcelRepository().GetByTrackingNumber(ctx, created.TrackingNumber())
	require.NoError(t, err)
	assert.True(t, found.ID().IsEqual(created.ID()))
	assert.Equal(t, "Alice", found.CustomerName())
}

func TestScenario_PairingThenScanning(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	seeded := seedParcel(t, store)

	sessionFactory := memorySessionUoWFactory{store: store}
	startHandler := commands.NewStartSessionCommandHandler(sessionFactory)
	joinHandler := commands.NewJoinSessionCommandHandler(sessionFactory)
	connectHandler := commands.NewConnectSessionCommandHandler(sessionFactory)
	scanHandler := newScanHandler(store, false)

	startCmd, err := commands.NewStartSessionCommand("emp1", "Dock3")
	require.NoError(t, err)
	started, err := startHandler.Handle(ctx, startCmd)
	require.NoError(t, err)

	scanCmd, err := commands.NewScanParcelCommand(
		started.Key(), seeded.ID(), parcel.ActionOutForDelivery, "Dock3", "emp1", "")
	require.NoError(t, err)

	// Scanning before the pairing is confirmed must be rejected.
	_, err = scanHandler.Handle(ctx, scanCmd)
	require.ErrorIs(t, err, errs.ErrSessionNotConnected)

	joinCmd, err := commands.NewJoinSessionCommand(started.Key(), "scanner-7")
	require.NoError(t, err)
	_, err = joinHandler.Handle(ctx, joinCmd)
	require.NoError(t, err)

	connectCmd, err := commands.NewConnectSessionCommand(started.Key(), "")
	require.NoError(t, err)
	_, err = connectHandler.Handle(ctx, connectCmd)
	require.NoError(t, err)

	updated, err := scanHandler.Handle(ctx, scanCmd)
	require.NoError(t, err)
	assert.Equal(t, parcel.StatusOutForDelivery, updated.CurrentPublicStatus())
}

func TestScenario_ScanUnknownParcelLeavesStoreUntouched(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	seeded := seedParcel(t, store)
	connected := seedSession(t, store, session.Connected)

	scanHandler := newScanHandler(store, false)
	scanCmd, err := commands.NewScanParcelCommand(
		connected.Key(), kernel.NewUUID(), parcel.ActionDelivered, "NYC", "emp1", "")
	require.NoError(t, err)

	_, err = scanHandler.Handle(ctx, scanCmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	assert.Len(t, getParcel(t, store, seeded.ID()).Checkpoints(), 1)
}
