package commands_test

import (
	"testing"
	"time"

	"parceltrack/internal/adapters/out/memory"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/session"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestJoinSessionCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	pending := seedSession(t, store, session.Pending)

	h := commands.NewJoinSessionCommandHandler(memorySessionUoWFactory{store: store})
	cmd, err := commands.NewJoinSessionCommand(pending.Key(), "scanner-7")
	require.NoError(t, err)

	joined, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, session.Queued, joined.State())
	assert.Equal(t, "scanner-7", joined.DeviceName())

	stored := getSession(t, store, pending.Key())
	assert.Equal(t, session.Queued, stored.State())
}

func TestJoinSessionCommandHandler_Handle_ReannouncePicksNewDevice(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	pending := seedSession(t, store, session.Pending)

	h := commands.NewJoinSessionCommandHandler(memorySessionUoWFactory{store: store})

	first, err := commands.NewJoinSessionCommand(pending.Key(), "scanner-7")
	require.NoError(t, err)
	_, err = h.Handle(ctx, first)
	require.NoError(t, err)

	second, err := commands.NewJoinSessionCommand(pending.Key(), "scanner-9")
	require.NoError(t, err)
	joined, err := h.Handle(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, session.Queued, joined.State())
	assert.Equal(t, "scanner-9", joined.DeviceName())
}

func TestJoinSessionCommandHandler_Handle_UnknownSession(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	h := commands.NewJoinSessionCommandHandler(memorySessionUoWFactory{store: store})
	cmd, err := commands.NewJoinSessionCommand(kernel.GenerateSessionKey(), "scanner-7")
	require.NoError(t, err)

	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestConnectSessionCommandHandler_Handle_IsIdempotent(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	queued := seedSession(t, store, session.Queued)

	h := commands.NewConnectSessionCommandHandler(memorySessionUoWFactory{store: store})
	cmd, err := commands.NewConnectSessionCommand(queued.Key(), "")
	require.NoError(t, err)

	connected, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, session.Connected, connected.State())
	assert.Equal(t, "scanner-7", connected.DeviceName())

	again, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, session.Connected, again.State())
	assert.Equal(t, "scanner-7", again.DeviceName())
}

func TestConnectSessionCommandHandler_Handle_DeviceNameOverride(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	queued := seedSession(t, store, session.Queued)

	h := commands.NewConnectSessionCommandHandler(memorySessionUoWFactory{store: store})
	cmd, err := commands.NewConnectSessionCommand(queued.Key(), "handheld-2")
	require.NoError(t, err)

	connected, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "handheld-2", connected.DeviceName())
}

func TestEndSessionCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	connected := seedSession(t, store, session.Connected)

	h := commands.NewEndSessionCommandHandler(memorySessionUoWFactory{store: store})
	cmd, err := commands.NewEndSessionCommand(connected.Key())
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))

	uow := store.NewUnitOfWork()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	_, err = uow.SessionRepository().Get(ctx, connected.Key())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestEndSessionCommandHandler_Handle_UnknownKeySucceeds(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	h := commands.NewEndSessionCommandHandler(memorySessionUoWFactory{store: store})
	cmd, err := commands.NewEndSessionCommand(kernel.GenerateSessionKey())
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
}

func TestPurgeStaleSessionsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	stale := seedSession(t, store, session.Pending)

	// Make the second session fresh relative to the cutoff.
	time.Sleep(10 * time.Millisecond)
	cutoff := time.Now()
	fresh := seedSession(t, store, session.Connected)

	h := commands.NewPurgeStaleSessionsCommandHandler(memorySessionUoWFactory{store: store})
	cmd, err := commands.NewPurgeStaleSessionsCommand(cutoff)
	require.NoError(t, err)

	purged, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	uow := store.NewUnitOfWork()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	_, err = uow.SessionRepository().Get(ctx, stale.Key())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	_, err = uow.SessionRepository().Get(ctx, fresh.Key())
	require.NoError(t, err)
}

func TestPurgeStaleSessionsCommandHandler_RechecksUnderWriteHold(t *testing.T) {
	ctx := t.Context()
	cutoff := time.Now()
	listedAt := cutoff.Add(-2 * time.Hour)

	refreshedKey := kernel.GenerateSessionKey()
	refreshedSnapshot, err := session.NewSession(refreshedKey, "emp1", "Dock3", listedAt)
	require.NoError(t, err)
	// The same session as its owner touched it after the listing.
	refreshedNow, err := session.RestoreSession(refreshedKey, "emp1", "Dock3",
		session.Connected, "scanner-7", listedAt, cutoff.Add(time.Minute), nil)
	require.NoError(t, err)

	vanishedKey := kernel.GenerateSessionKey()
	vanishedSnapshot, err := session.NewSession(vanishedKey, "emp2", "Dock3", listedAt)
	require.NoError(t, err)

	staleKey := kernel.GenerateSessionKey()
	staleSnapshot, err := session.NewSession(staleKey, "emp3", "Dock3", listedAt)
	require.NoError(t, err)

	repo := new(MockSessionRepository)
	uow := new(MockSessionUoW)
	uow.On("SessionRepository").Return(repo)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		repo.On("GetUpdatedBefore", ctx, cutoff).
			Return([]*session.Session{refreshedSnapshot, vanishedSnapshot, staleSnapshot}, nil).Once(),
		repo.On("GetForUpdate", ctx, refreshedKey).Return(refreshedNow, nil).Once(),
		repo.On("GetForUpdate", ctx, vanishedKey).
			Return(nil, errs.NewObjectNotFoundError("sessionKey", vanishedKey.String())).Once(),
		repo.On("GetForUpdate", ctx, staleKey).Return(staleSnapshot, nil).Once(),
		repo.On("Delete", ctx, staleKey).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockSessionUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPurgeStaleSessionsCommandHandler(factory)
	cmd, err := commands.NewPurgeStaleSessionsCommand(cutoff)
	require.NoError(t, err)

	purged, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	repo.AssertNotCalled(t, "Delete", ctx, refreshedKey)
	repo.AssertNotCalled(t, "Delete", ctx, vanishedKey)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewPurgeStaleSessionsCommand_ZeroCutoff(t *testing.T) {
	_, err := commands.NewPurgeStaleSessionsCommand(time.Time{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
