package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"parceltrack/internal/adapters/out/memory"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/domain/model/session"

	"github.com/stretchr/testify/require"
)

// In-memory factories let handler tests run against the real locking
// behavior instead of mocks.

type memoryParcelUoWFactory struct{ store *memory.Store }

func (f memoryParcelUoWFactory) Create() commands.ParcelUoW {
	return f.store.NewUnitOfWork()
}

type memorySessionUoWFactory struct{ store *memory.Store }

func (f memorySessionUoWFactory) Create() commands.SessionUoW {
	return f.store.NewUnitOfWork()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedParcel(t *testing.T, store *memory.Store) *parcel.Parcel {
	t.Helper()

	seeded, err := parcel.NewParcel(
		kernel.NewUUID(), kernel.GenerateTrackingNumber(), "Alice", "Bob", "NYC", "", time.Now())
	require.NoError(t, err)

	uow := store.NewUnitOfWork()
	ctx := t.Context()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.ParcelRepository().Add(ctx, seeded))
	require.NoError(t, uow.Commit(ctx))
	return seeded
}

func seedSession(t *testing.T, store *memory.Store, state session.State) *session.Session {
	t.Helper()

	seeded, err := session.NewSession(kernel.GenerateSessionKey(), "emp1", "Dock3", time.Now())
	require.NoError(t, err)
	if state == session.Queued || state == session.Connected {
		require.NoError(t, seeded.Join("scanner-7", time.Now()))
	}
	if state == session.Connected {
		seeded.Connect("", time.Now())
	}

	uow := store.NewUnitOfWork()
	ctx := t.Context()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.SessionRepository().Add(ctx, seeded))
	require.NoError(t, uow.Commit(ctx))
	return seeded
}

func getParcel(t *testing.T, store *memory.Store, id kernel.UUID) *parcel.Parcel {
	t.Helper()

	uow := store.NewUnitOfWork()
	ctx := t.Context()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	loaded, err := uow.ParcelRepository().Get(ctx, id)
	require.NoError(t, err)
	return loaded
}

func getSession(t *testing.T, store *memory.Store, key kernel.SessionKey) *session.Session {
	t.Helper()

	uow := store.NewUnitOfWork()
	ctx := t.Context()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()
	loaded, err := uow.SessionRepository().Get(ctx, key)
	require.NoError(t, err)
	return loaded
}
