package demand_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/demand"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newTestDemand(t *testing.T) *demand.Demand {
	t.Helper()
	d, err := demand.NewDemand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}, "two boxes")
	require.NoError(t, err)
	return d
}

func TestNewDemand(t *testing.T) {
	t.Run("starts pending with frozen agency", func(t *testing.T) {
		shipperID := kernel.NewUUID()
		agencyID := kernel.NewUUID()
		parcels := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}

		d, err := demand.NewDemand(kernel.NewUUID(), shipperID, agencyID, parcels, "")
		require.NoError(t, err)

		assert.Equal(t, demand.Pending, d.Status())
		assert.True(t, d.AgencyID().IsEqual(agencyID))
		assert.Nil(t, d.ReviewerID())
		assert.Nil(t, d.ReviewedAt())
		assert.Equal(t, parcels, d.ParcelIDs())
	})

	t.Run("preserves member order", func(t *testing.T) {
		parcels := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}
		d, err := demand.NewDemand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), parcels, "")
		require.NoError(t, err)

		got := d.ParcelIDs()
		for i := range parcels {
			assert.True(t, parcels[i].IsEqual(got[i]))
		}
	})

	t.Run("rejects empty member set", func(t *testing.T) {
		_, err := demand.NewDemand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects duplicate members", func(t *testing.T) {
		p := kernel.NewUUID()
		_, err := demand.NewDemand(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			[]kernel.UUID{p, p}, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var d demand.Demand
		require.ErrorIs(t, d.Validate(), demand.ErrDemandIsNotConstructed)
	})
}

func TestDemand_Review(t *testing.T) {
	now := time.Now()

	t.Run("agent accepts and is recorded", func(t *testing.T) {
		d := newTestDemand(t)
		agent := newTestActor(t, actor.Agent)

		require.NoError(t, d.Review(agent, demand.Accepted, "ok to pick up", now))

		assert.Equal(t, demand.Accepted, d.Status())
		require.NotNil(t, d.ReviewerID())
		assert.True(t, d.ReviewerID().IsEqual(agent.ID()))
		require.NotNil(t, d.ReviewedAt())
		assert.Equal(t, now, *d.ReviewedAt())
		assert.Equal(t, "ok to pick up", d.Notes())
	})

	t.Run("admin may review", func(t *testing.T) {
		d := newTestDemand(t)
		require.NoError(t, d.Review(newTestActor(t, actor.Admin), demand.Rejected, "", now))
		assert.Equal(t, demand.Rejected, d.Status())
	})

	t.Run("non-reviewer roles are denied", func(t *testing.T) {
		for _, role := range []actor.Role{actor.Shipper, actor.Driver, actor.Dispatcher} {
			d := newTestDemand(t)
			err := d.Review(newTestActor(t, role), demand.Accepted, "", now)
			require.ErrorIsf(t, err, errs.ErrPermissionDenied, "role %s", role)
			assert.Equal(t, demand.Pending, d.Status())
		}
	})

	t.Run("pending is not a legal decision", func(t *testing.T) {
		d := newTestDemand(t)
		err := d.Review(newTestActor(t, actor.Agent), demand.Pending, "", now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("consumed demand is immutable", func(t *testing.T) {
		d := newTestDemand(t)
		agent := newTestActor(t, actor.Agent)
		require.NoError(t, d.Review(agent, demand.Accepted, "", now))
		require.NoError(t, d.MarkConsumed())

		err := d.Review(agent, demand.Accepted, "reopen please", now)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, demand.Completed, d.Status())
		assert.NotEqual(t, "reopen please", d.Notes())
	})
}

func TestDemand_MarkConsumed(t *testing.T) {
	t.Run("accepted demand completes", func(t *testing.T) {
		d := newTestDemand(t)
		require.NoError(t, d.Review(newTestActor(t, actor.Agent), demand.Accepted, "", time.Now()))

		require.NoError(t, d.MarkConsumed())
		assert.Equal(t, demand.Completed, d.Status())
	})

	t.Run("pending demand cannot be consumed", func(t *testing.T) {
		d := newTestDemand(t)
		require.ErrorIs(t, d.MarkConsumed(), errs.ErrConflict)
	})
}

func TestDemand_CanBeDeletedBy(t *testing.T) {
	t.Run("owner shipper may delete a pending demand", func(t *testing.T) {
		shipperID := kernel.NewUUID()
		d, err := demand.NewDemand(kernel.NewUUID(), shipperID, kernel.NewUUID(),
			[]kernel.UUID{kernel.NewUUID()}, "")
		require.NoError(t, err)

		owner, err := actor.NewActor(shipperID, actor.Shipper)
		require.NoError(t, err)

		require.NoError(t, d.CanBeDeletedBy(owner))
	})

	t.Run("other shipper is denied", func(t *testing.T) {
		d := newTestDemand(t)
		err := d.CanBeDeletedBy(newTestActor(t, actor.Shipper))
		require.ErrorIs(t, err, errs.ErrPermissionDenied)
	})

	t.Run("agent may delete any demand", func(t *testing.T) {
		d := newTestDemand(t)
		require.NoError(t, d.CanBeDeletedBy(newTestActor(t, actor.Agent)))
	})

	t.Run("accepted demand is immune", func(t *testing.T) {
		d := newTestDemand(t)
		require.NoError(t, d.Review(newTestActor(t, actor.Agent), demand.Accepted, "", time.Now()))

		err := d.CanBeDeletedBy(newTestActor(t, actor.Admin))
		require.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestStatus_IsOpen(t *testing.T) {
	assert.True(t, demand.Pending.IsOpen())
	assert.True(t, demand.Accepted.IsOpen())
	assert.False(t, demand.Rejected.IsOpen())
	assert.False(t, demand.Completed.IsOpen())
}

func TestStatusFromString(t *testing.T) {
	for _, s := range []demand.Status{demand.Pending, demand.Accepted, demand.Rejected, demand.Completed} {
		parsed, err := demand.StatusFromString(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := demand.StatusFromString("Approved")
	require.Error(t, err)
}
