package queries_test

import (
	"testing"
	"time"

	"parceltrack/internal/adapters/out/memory"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/session"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySessionUoWFactory struct{ store *memory.Store }

func (f memorySessionUoWFactory) Create() queries.SessionUoW {
	return f.store.NewUnitOfWork()
}

func TestGetSessionQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	seeded, err := session.NewSession(kernel.GenerateSessionKey(), "emp1", "Dock3", time.Now())
	require.NoError(t, err)
	require.NoError(t, seeded.Join("scanner-7", time.Now()))
	seeded.Connect("", time.Now())
	parcelID := kernel.NewUUID()
	seeded.RecordScan(parcelID, 2, time.Now())

	uow := store.NewUnitOfWork()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.SessionRepository().Add(ctx, seeded))
	require.NoError(t, uow.Commit(ctx))

	h := queries.NewGetSessionQueryHandler(memorySessionUoWFactory{store: store})
	query, err := queries.NewGetSessionQuery(seeded.Key())
	require.NoError(t, err)

	resp, err := h.Handle(ctx, query)
	require.NoError(t, err)
	assert.Equal(t, seeded.Key().String(), resp.SessionKey)
	assert.Equal(t, "emp1", resp.Employee)
	assert.Equal(t, "Dock3", resp.Location)
	assert.Equal(t, "Connected", resp.State)
	assert.Equal(t, "scanner-7", resp.DeviceName)
	require.Len(t, resp.Scans, 1)
	assert.True(t, resp.Scans[0].ParcelID.IsEqual(parcelID))
	assert.Equal(t, 2, resp.Scans[0].CheckpointSeq)
}

func TestGetSessionQueryHandler_Handle_UnknownKey(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	h := queries.NewGetSessionQueryHandler(memorySessionUoWFactory{store: store})
	query, err := queries.NewGetSessionQuery(kernel.GenerateSessionKey())
	require.NoError(t, err)

	_, err = h.Handle(ctx, query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetSessionQueryHandler_Handle_InvalidQuery(t *testing.T) {
	ctx := t.Context()
	h := queries.NewGetSessionQueryHandler(memorySessionUoWFactory{store: memory.NewStore()})
	_, err := h.Handle(ctx, queries.GetSessionQuery{})
	require.ErrorIs(t, err, queries.ErrGetSessionQueryIsNotConstructed)
}
