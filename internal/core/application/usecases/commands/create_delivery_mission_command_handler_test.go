package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDeliveryMissionCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	dispatcher := mustActor(t, actor.Dispatcher)
	driverID := kernel.NewUUID()
	warehouseID := kernel.NewUUID()

	p1 := parcelInStatus(t, parcel.AtDepot)
	p2 := parcelInStatus(t, parcel.ReturnedToDepot) // redelivery rides along
	parcelIDs := []kernel.UUID{p1.ID(), p2.ID()}

	cmd, err := commands.NewCreateDeliveryMissionCommand(
		driverID, warehouseID, time.Now().UTC().Add(24*time.Hour), parcelIDs, "", dispatcher)
	require.NoError(t, err)

	staff := new(MockStaffDirectory)
	staff.On("DriverIsEligible", ctx, driverID).Return(true, nil).Once()

	parcels := new(MockParcelRepository)
	parcels.On("GetBatch", ctx, parcelIDs).Return([]*parcel.Parcel{p1, p2}, nil).Once()
	parcels.On("SuccessCodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	parcels.On("FailureCodeExists", ctx, mock.AnythingOfType("string")).Return(false, nil)
	parcels.On("UpdateFromStatus", ctx, p1, parcel.AtDepot).Return(nil).Once()
	parcels.On("UpdateFromStatus", ctx, p2, parcel.ReturnedToDepot).Return(nil).Once()

	deliveries := new(MockDeliveryMissionRepository)
	deliveries.On("ActiveMissionParcelIDs", ctx, parcelIDs).Return([]kernel.UUID{}, nil).Once()
	deliveries.On("Add", ctx, mock.AnythingOfType("*mission.DeliveryMission")).Return(nil).Once()

	history := new(MockTrackingHistoryRepository)
	history.On("Append", ctx, mock.AnythingOfType("*tracking.Event")).Return(nil).Twice()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StaffDirectory").Return(staff)
	uow.On("ParcelRepository").Return(parcels)
	uow.On("DeliveryMissionRepository").Return(deliveries)
	uow.On("TrackingHistoryRepository").Return(history)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewCreateDeliveryMissionCommandHandler(factory, services.NewSecurityCodeGenerator())
	require.NoError(t, err)
	m, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, mission.DeliveryScheduled, m.Status())
	links := m.Links()
	require.Len(t, links, 2)
	require.Equal(t, 1, links[0].Sequence)
	require.Equal(t, 2, links[1].Sequence)
	require.Equal(t, mission.LinkPending, links[0].Status)

	require.Equal(t, parcel.InTransit, p1.Status())
	require.Equal(t, parcel.InTransit, p2.Status())
	require.NotNil(t, p1.SuccessCode())
	require.NotNil(t, p1.FailureCode())
	require.NotEqual(t, *p1.SuccessCode(), *p1.FailureCode())
	deliveries.AssertExpectations(t)
	history.AssertExpectations(t)
}

func TestCreateDeliveryMissionCommandHandler_Handle_ParcelNotAtDepot(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	p := parcelInStatus(t, parcel.InTransit)
	parcelIDs := []kernel.UUID{p.ID()}
	cmd, err := commands.NewCreateDeliveryMissionCommand(
		driverID, kernel.NewUUID(), time.Now().UTC(), parcelIDs, "", mustActor(t, actor.Dispatcher))
	require.NoError(t, err)

	staff := new(MockStaffDirectory)
	staff.On("DriverIsEligible", ctx, driverID).Return(true, nil).Once()
	parcels := new(MockParcelRepository)
	parcels.On("GetBatch", ctx, parcelIDs).Return([]*parcel.Parcel{p}, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StaffDirectory").Return(staff).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewCreateDeliveryMissionCommandHandler(factory, services.NewSecurityCodeGenerator())
	require.NoError(t, err)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.ErrorContains(t, err, p.ID().String())
}

func TestCreateDeliveryMissionCommandHandler_Handle_ParcelOnActiveMission(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	p := parcelInStatus(t, parcel.AtDepot)
	parcelIDs := []kernel.UUID{p.ID()}
	cmd, err := commands.NewCreateDeliveryMissionCommand(
		driverID, kernel.NewUUID(), time.Now().UTC(), parcelIDs, "", mustActor(t, actor.Dispatcher))
	require.NoError(t, err)

	staff := new(MockStaffDirectory)
	staff.On("DriverIsEligible", ctx, driverID).Return(true, nil).Once()
	parcels := new(MockParcelRepository)
	parcels.On("GetBatch", ctx, parcelIDs).Return([]*parcel.Parcel{p}, nil).Once()
	deliveries := new(MockDeliveryMissionRepository)
	deliveries.On("ActiveMissionParcelIDs", ctx, parcelIDs).Return(parcelIDs, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("StaffDirectory").Return(staff).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("DeliveryMissionRepository").Return(deliveries).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewCreateDeliveryMissionCommandHandler(factory, services.NewSecurityCodeGenerator())
	require.NoError(t, err)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	deliveries.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateDeliveryMissionCommandHandler_Handle_RequiresCapability(t *testing.T) {
	cmd, err := commands.NewCreateDeliveryMissionCommand(
		kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC(),
		[]kernel.UUID{kernel.NewUUID()}, "", mustActor(t, actor.Shipper))
	require.NoError(t, err)

	h, err := commands.NewCreateDeliveryMissionCommandHandler(
		new(MockUoWFactory), services.NewSecurityCodeGenerator())
	require.NoError(t, err)
	_, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}
