package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func inTransitParcel(t *testing.T, successCode, failureCode string) *parcel.Parcel {
	t.Helper()
	code, err := kernel.NewTrackingCode()
	require.NoError(t, err)
	p, err := parcel.RestoreParcel(
		kernel.NewUUID(), code, kernel.NewUUID(), parcel.InTransit,
		&successCode, &failureCode, nil)
	require.NoError(t, err)
	return p
}

func TestResolveDeliveryCommandHandler_Handle_SuccessCode(t *testing.T) {
	ctx := t.Context()
	p := inTransitParcel(t, "AB23CD", "EF45GH")
	m := scheduledDeliveryMission(t, p.ID())
	driver := mustActor(t, actor.Driver)
	cmd, err := commands.NewResolveDeliveryCommand(m.ID(), p.ID(), "ab23cd", driver)
	require.NoError(t, err)

	deliveries := new(MockDeliveryMissionRepository)
	deliveries.On("Get", ctx, m.ID()).Return(m, nil).Once()
	deliveries.On("Update", ctx, m).Return(nil).Once()
	parcels := new(MockParcelRepository)
	parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	parcels.On("UpdateFromStatus", ctx, p, parcel.InTransit).Return(nil).Once()
	history := new(MockTrackingHistoryRepository)
	history.On("Append", ctx, mock.AnythingOfType("*tracking.Event")).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryMissionRepository").Return(deliveries)
	uow.On("ParcelRepository").Return(parcels)
	uow.On("TrackingHistoryRepository").Return(history)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewResolveDeliveryCommandHandler(factory)
	require.NoError(t, err)
	outcome, newStatus, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, parcel.OutcomeDelivered, outcome)
	require.Equal(t, parcel.Delivered, newStatus)
	require.Equal(t, parcel.Delivered, p.Status())
	require.Nil(t, p.SuccessCode())
	require.Nil(t, p.FailureCode())

	// Single-parcel mission closes with its last link.
	require.Equal(t, mission.DeliveryCompleted, m.Status())
	link, err := m.Link(p.ID())
	require.NoError(t, err)
	require.Equal(t, mission.LinkCompleted, link.Status)
	require.NotNil(t, link.CompletedAt)
}

func TestResolveDeliveryCommandHandler_Handle_FailureCode(t *testing.T) {
	ctx := t.Context()
	p := inTransitParcel(t, "AB23CD", "EF45GH")
	other := parcelInStatus(t, parcel.InTransit)
	m := scheduledDeliveryMission(t, p.ID(), other.ID())
	driver := mustActor(t, actor.Driver)
	cmd, err := commands.NewResolveDeliveryCommand(m.ID(), p.ID(), "EF45GH", driver)
	require.NoError(t, err)

	deliveries := new(MockDeliveryMissionRepository)
	deliveries.On("Get", ctx, m.ID()).Return(m, nil).Once()
	deliveries.On("Update", ctx, m).Return(nil).Once()
	parcels := new(MockParcelRepository)
	parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()
	parcels.On("UpdateFromStatus", ctx, p, parcel.InTransit).Return(nil).Once()
	history := new(MockTrackingHistoryRepository)
	history.On("Append", ctx, mock.AnythingOfType("*tracking.Event")).Return(nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryMissionRepository").Return(deliveries)
	uow.On("ParcelRepository").Return(parcels)
	uow.On("TrackingHistoryRepository").Return(history)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewResolveDeliveryCommandHandler(factory)
	require.NoError(t, err)
	outcome, newStatus, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, parcel.OutcomeFailed, outcome)
	require.Equal(t, parcel.ReturnedToDepot, newStatus)
	require.Nil(t, p.SuccessCode())

	// A second pending link keeps the mission open.
	require.Equal(t, mission.DeliveryScheduled, m.Status())
	link, err := m.Link(p.ID())
	require.NoError(t, err)
	require.Equal(t, mission.LinkFailed, link.Status)
}

func TestResolveDeliveryCommandHandler_Handle_WrongCode(t *testing.T) {
	ctx := t.Context()
	p := inTransitParcel(t, "AB23CD", "EF45GH")
	m := scheduledDeliveryMission(t, p.ID())
	driver := mustActor(t, actor.Driver)
	cmd, err := commands.NewResolveDeliveryCommand(m.ID(), p.ID(), "ZZ99ZZ", driver)
	require.NoError(t, err)

	deliveries := new(MockDeliveryMissionRepository)
	deliveries.On("Get", ctx, m.ID()).Return(m, nil).Once()
	parcels := new(MockParcelRepository)
	parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryMissionRepository").Return(deliveries).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewResolveDeliveryCommandHandler(factory)
	require.NoError(t, err)
	_, _, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidSecurityCode)

	require.Equal(t, parcel.InTransit, p.Status())
	require.NotNil(t, p.SuccessCode())
	deliveries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResolveDeliveryCommandHandler_Handle_ParcelNotOnMission(t *testing.T) {
	ctx := t.Context()
	p := inTransitParcel(t, "AB23CD", "EF45GH")
	m := scheduledDeliveryMission(t) // links a different parcel
	driver := mustActor(t, actor.Driver)
	cmd, err := commands.NewResolveDeliveryCommand(m.ID(), p.ID(), "AB23CD", driver)
	require.NoError(t, err)

	deliveries := new(MockDeliveryMissionRepository)
	deliveries.On("Get", ctx, m.ID()).Return(m, nil).Once()
	parcels := new(MockParcelRepository)
	parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryMissionRepository").Return(deliveries).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewResolveDeliveryCommandHandler(factory)
	require.NoError(t, err)
	_, _, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestResolveDeliveryCommandHandler_Handle_RequiresCapability(t *testing.T) {
	cmd, err := commands.NewResolveDeliveryCommand(
		kernel.NewUUID(), kernel.NewUUID(), "AB23CD", mustActor(t, actor.Shipper))
	require.NoError(t, err)

	h, err := commands.NewResolveDeliveryCommandHandler(new(MockUoWFactory))
	require.NoError(t, err)
	_, _, err = h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestResolveDeliveryCommandHandler_Handle_ResubmittedAfterResolution(t *testing.T) {
	ctx := t.Context()
	// Already resolved: link closed, codes consumed.
	p := parcelInStatus(t, parcel.Delivered)
	other := parcelInStatus(t, parcel.InTransit)
	m := scheduledDeliveryMission(t, p.ID(), other.ID())
	require.NoError(t, m.ResolveParcel(p.ID(), parcel.OutcomeDelivered, time.Now().UTC()))
	driver := mustActor(t, actor.Driver)
	cmd, err := commands.NewResolveDeliveryCommand(m.ID(), p.ID(), "AB23CD", driver)
	require.NoError(t, err)

	deliveries := new(MockDeliveryMissionRepository)
	deliveries.On("Get", ctx, m.ID()).Return(m, nil).Once()
	parcels := new(MockParcelRepository)
	parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryMissionRepository").Return(deliveries).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewResolveDeliveryCommandHandler(factory)
	require.NoError(t, err)
	_, _, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	require.Equal(t, parcel.Delivered, p.Status())
	deliveries.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestResolveDeliveryCommandHandler_Handle_ParcelNotOnMission_WrongCode(t *testing.T) {
	ctx := t.Context()
	p := inTransitParcel(t, "AB23CD", "EF45GH")
	m := scheduledDeliveryMission(t) // links a different parcel
	driver := mustActor(t, actor.Driver)
	cmd, err := commands.NewResolveDeliveryCommand(m.ID(), p.ID(), "ZZ99ZZ", driver)
	require.NoError(t, err)

	deliveries := new(MockDeliveryMissionRepository)
	deliveries.On("Get", ctx, m.ID()).Return(m, nil).Once()
	parcels := new(MockParcelRepository)
	parcels.On("Get", ctx, p.ID()).Return(p, nil).Once()

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DeliveryMissionRepository").Return(deliveries).Once()
	uow.On("ParcelRepository").Return(parcels).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h, err := commands.NewResolveDeliveryCommandHandler(factory)
	require.NoError(t, err)
	_, _, err = h.Handle(ctx, cmd)

	// Membership is checked before the code, so an outsider guessing with
	// an arbitrary code cannot distinguish a wrong code from a wrong parcel.
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	require.NotNil(t, p.SuccessCode())
}
