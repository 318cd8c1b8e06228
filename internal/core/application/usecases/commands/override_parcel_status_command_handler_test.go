package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOverrideParcelStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	admin := mustActor(t, actor.Admin)
	p := parcelInStatus(t, parcel.Delivered)
	cmd, err := commands.NewOverrideParcelStatusCommand(
		p.ID(), parcel.DeliveredPaid, "payment reconciled", admin)
	require.NoError(t, err)

	parcels := new(MockParcelRepository)
	parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	parcels.On("UpdateFromStatus", ctx, p, parcel.Delivered).Return(nil).Once()
	history := new(MockTrackingHistoryRepository)
	history.On("Append", ctx, mock.AnythingOfType("*tracking.Event")).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcels)
	uow.On("TrackingHistoryRepository").Return(history)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewOverrideParcelStatusCommandHandler(factory)
	require.NoError(t, err)
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, parcel.DeliveredPaid, p.Status())
	history.AssertExpectations(t)
}

func TestOverrideParcelStatusCommandHandler_Handle_RequiresAdmin(t *testing.T) {
	p := parcelInStatus(t, parcel.Delivered)
	cmd, err := commands.NewOverrideParcelStatusCommand(
		p.ID(), parcel.DeliveredPaid, "", mustActor(t, actor.Dispatcher))
	require.NoError(t, err)

	h, err := commands.NewOverrideParcelStatusCommandHandler(new(MockUoWFactory))
	require.NoError(t, err)
	require.ErrorIs(t, h.Handle(t.Context(), cmd), errs.ErrPermissionDenied)
}

// An override is not a free pass around the edge table.
func TestOverrideParcelStatusCommandHandler_Handle_IllegalEdgeRejected(t *testing.T) {
	ctx := t.Context()
	admin := mustActor(t, actor.Admin)
	p := parcelInStatus(t, parcel.Pending)
	cmd, err := commands.NewOverrideParcelStatusCommand(
		p.ID(), parcel.Delivered, "shortcut", admin)
	require.NoError(t, err)

	parcels := new(MockParcelRepository)
	parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	history := new(MockTrackingHistoryRepository)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ParcelRepository").Return(parcels)
	uow.On("TrackingHistoryRepository").Return(history)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewOverrideParcelStatusCommandHandler(factory)
	require.NoError(t, err)
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrInvalidTransition)
	require.Equal(t, parcel.Pending, p.Status())
	history.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}
