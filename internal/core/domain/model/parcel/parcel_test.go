package parcel_test

import (
	"testing"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParcel(t *testing.T) *parcel.Parcel {
	t.Helper()
	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		kernel.GenerateTrackingNumber(),
		"Alice", "Bob", "NYC", "",
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return p
}

func TestNewParcel(t *testing.T) {
	t.Run("should create valid parcel with synthetic first checkpoint", func(t *testing.T) {
		id := kernel.NewUUID()
		tn := kernel.GenerateTrackingNumber()
		createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		p, err := parcel.NewParcel(id, tn, "Alice", "Bob", "NYC", "fragile", createdAt)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.True(t, p.ID().IsEqual(id))
		assert.True(t, p.TrackingNumber().IsEqual(tn))
		assert.Equal(t, "Alice", p.CustomerName())
		assert.Equal(t, "Bob", p.RecipientName())
		assert.Equal(t, "NYC", p.Destination())
		assert.Equal(t, "fragile", p.Details())
		assert.Equal(t, parcel.StatusOrderCreated, p.CurrentPublicStatus())

		cps := p.Checkpoints()
		require.Len(t, cps, 1)
		assert.Equal(t, 1, cps[0].Seq())
		assert.Equal(t, parcel.FrontDeskLocation, cps[0].LocationName())
		assert.Empty(t, cps[0].ScannedBy())
		assert.Equal(t, parcel.ActionCreated, cps[0].InternalStatus())
		assert.Equal(t, parcel.StatusOrderCreated, cps[0].PublicStatus())
		assert.Equal(t, createdAt, cps[0].Timestamp())
	})

	t.Run("should fail with missing required fields", func(t *testing.T) {
		id := kernel.NewUUID()
		tn := kernel.GenerateTrackingNumber()
		now := time.Now()

		testCases := []struct {
			name      string
			customer  string
			recipient string
			dest      string
		}{
			{"empty customerName", "", "Bob", "NYC"},
			{"empty recipientName", "Alice", "", "NYC"},
			{"empty destination", "Alice", "Bob", ""},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				p, err := parcel.NewParcel(id, tn, tc.customer, tc.recipient, tc.dest, "", now)
				require.ErrorIs(t, err, errs.ErrValueIsRequired)
				assert.Nil(t, p)
			})
		}
	})

	t.Run("should fail with zero-value identifiers", func(t *testing.T) {
		var id kernel.UUID
		_, err := parcel.NewParcel(id, kernel.GenerateTrackingNumber(), "Alice", "Bob", "NYC", "", time.Now())
		require.Error(t, err)

		var tn kernel.TrackingNumber
		_, err = parcel.NewParcel(kernel.NewUUID(), tn, "Alice", "Bob", "NYC", "", time.Now())
		require.Error(t, err)
	})

	t.Run("zero value fails Validate", func(t *testing.T) {
		var p parcel.Parcel
		require.ErrorIs(t, p.Validate(), parcel.ErrParcelIsNotConstructed)
	})
}

func TestParcel_AppendCheckpoint(t *testing.T) {
	t.Run("appends with contiguous sequence and derived status", func(t *testing.T) {
		p := newTestParcel(t)
		at := p.CreatedAt().Add(time.Hour)

		cp, err := p.AppendCheckpoint(parcel.ActionOutForDelivery, "Dock3", "emp1", "left gate", at)

		require.NoError(t, err)
		assert.Equal(t, 2, cp.Seq())
		assert.Equal(t, "Dock3", cp.LocationName())
		assert.Equal(t, "emp1", cp.ScannedBy())
		assert.Equal(t, "left gate", cp.Notes())
		assert.Equal(t, parcel.StatusOutForDelivery, cp.PublicStatus())
		assert.Equal(t, parcel.StatusOutForDelivery, p.CurrentPublicStatus())
		assert.Equal(t, parcel.ActionOutForDelivery, p.CurrentInternalStatus())
		require.Len(t, p.Checkpoints(), 2)
	})

	t.Run("sequence stays gapless over many appends", func(t *testing.T) {
		p := newTestParcel(t)
		at := p.CreatedAt()
		for i := range 50 {
			at = at.Add(time.Minute)
			_, err := p.AppendCheckpoint(parcel.ActionStoredInWarehouse, "WH1", "emp1", "", at)
			require.NoError(t, err, "append %d", i)
		}

		cps := p.Checkpoints()
		require.Len(t, cps, 51)
		for i, cp := range cps {
			assert.Equal(t, i+1, cp.Seq())
		}
	})

	t.Run("rejects missing fields without mutating history", func(t *testing.T) {
		p := newTestParcel(t)

		_, err := p.AppendCheckpoint("", "Dock3", "emp1", "", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		_, err = p.AppendCheckpoint(parcel.ActionInStore, "", "emp1", "", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		_, err = p.AppendCheckpoint(parcel.ActionInStore, "Dock3", "", "", time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		assert.Len(t, p.Checkpoints(), 1)
		assert.Equal(t, parcel.StatusOrderCreated, p.CurrentPublicStatus())
	})

	t.Run("clamps timestamps so history never goes backwards", func(t *testing.T) {
		p := newTestParcel(t)
		later := p.CreatedAt().Add(2 * time.Hour)
		_, err := p.AppendCheckpoint(parcel.ActionInStore, "Store", "emp1", "", later)
		require.NoError(t, err)

		earlier := p.CreatedAt().Add(time.Hour)
		cp, err := p.AppendCheckpoint(parcel.ActionOutForDelivery, "Dock3", "emp1", "", earlier)
		require.NoError(t, err)

		assert.Equal(t, later, cp.Timestamp())
	})

	t.Run("accepts any action after a terminal status", func(t *testing.T) {
		p := newTestParcel(t)
		_, err := p.AppendCheckpoint(parcel.ActionDelivered, "Door", "emp1", "", time.Now())
		require.NoError(t, err)

		_, err = p.AppendCheckpoint(parcel.ActionReturnedToSender, "Depot", "emp1", "", time.Now())
		require.NoError(t, err)
		assert.Equal(t, parcel.StatusReturnedToSender, p.CurrentPublicStatus())
	})

	t.Run("unknown action maps to In Transit", func(t *testing.T) {
		p := newTestParcel(t)
		cp, err := p.AppendCheckpoint("customs_hold", "Border", "emp1", "", time.Now())
		require.NoError(t, err)
		assert.Equal(t, parcel.StatusInTransit, cp.PublicStatus())
	})
}

func TestRestoreParcel(t *testing.T) {
	t.Run("round trips through getters", func(t *testing.T) {
		p := newTestParcel(t)
		_, err := p.AppendCheckpoint(parcel.ActionInStore, "Store", "emp1", "note", p.CreatedAt().Add(time.Hour))
		require.NoError(t, err)

		restored, err := parcel.RestoreParcel(
			p.ID(), p.TrackingNumber(),
			p.CustomerName(), p.RecipientName(), p.Destination(), p.Details(),
			p.Checkpoints(),
		)

		require.NoError(t, err)
		require.NoError(t, restored.Validate())
		assert.True(t, restored.IsEqual(p))
		assert.Equal(t, p.CurrentPublicStatus(), restored.CurrentPublicStatus())
		assert.Equal(t, p.CurrentInternalStatus(), restored.CurrentInternalStatus())
		assert.Equal(t, p.Checkpoints(), restored.Checkpoints())
	})

	t.Run("rejects empty history", func(t *testing.T) {
		_, err := parcel.RestoreParcel(
			kernel.NewUUID(), kernel.GenerateTrackingNumber(),
			"Alice", "Bob", "NYC", "", nil,
		)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects gapped sequence", func(t *testing.T) {
		cp1, err := parcel.RestoreCheckpoint(1, parcel.FrontDeskLocation, "", "", time.Now(), parcel.ActionCreated, parcel.StatusOrderCreated)
		require.NoError(t, err)
		cp3, err := parcel.RestoreCheckpoint(3, "WH1", "emp1", "", time.Now(), parcel.ActionInStore, parcel.StatusInStoreProcessing)
		require.NoError(t, err)

		_, err = parcel.RestoreParcel(
			kernel.NewUUID(), kernel.GenerateTrackingNumber(),
			"Alice", "Bob", "NYC", "",
			[]parcel.Checkpoint{cp1, cp3},
		)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("current status derived from last checkpoint", func(t *testing.T) {
		cp1, err := parcel.RestoreCheckpoint(1, parcel.FrontDeskLocation, "", "", time.Now(), parcel.ActionCreated, parcel.StatusOrderCreated)
		require.NoError(t, err)
		cp2, err := parcel.RestoreCheckpoint(2, "Door", "emp1", "", time.Now(), parcel.ActionDelivered, parcel.StatusDelivered)
		require.NoError(t, err)

		p, err := parcel.RestoreParcel(
			kernel.NewUUID(), kernel.GenerateTrackingNumber(),
			"Alice", "Bob", "NYC", "",
			[]parcel.Checkpoint{cp1, cp2},
		)
		require.NoError(t, err)
		assert.Equal(t, parcel.StatusDelivered, p.CurrentPublicStatus())
	})
}
