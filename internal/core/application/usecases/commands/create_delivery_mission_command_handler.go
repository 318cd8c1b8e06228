package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// CreateDeliveryMissionCommandHandler loads depot-held parcels onto a
// delivery run. Each parcel gets a fresh success/failure code pair, any
// earlier pair is rotated out, and moves to InTransit with a history
// record. Link order follows the requested parcel order.
type CreateDeliveryMissionCommandHandler struct {
	uowFactory    UoWFactory
	codeGenerator services.SecurityCodeGenerator
}

func NewCreateDeliveryMissionCommandHandler(
	uowFactory UoWFactory,
	codeGenerator services.SecurityCodeGenerator,
) (CreateDeliveryMissionCommandHandler, error) {
	if uowFactory == nil {
		return CreateDeliveryMissionCommandHandler{}, ErrInvalidUoWFactory
	}
	return CreateDeliveryMissionCommandHandler{
		uowFactory:    uowFactory,
		codeGenerator: codeGenerator,
	}, nil
}

func (h CreateDeliveryMissionCommandHandler) Handle(
	ctx context.Context, cmd CreateDeliveryMissionCommand,
) (*mission.DeliveryMission, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Requester().Require(actor.CapCreateMission, "create delivery mission"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	eligible, err := uow.StaffDirectory().DriverIsEligible(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, errs.NewConflictError("driverID", "driver is not eligible", cmd.DriverID().String())
	}

	parcels, err := uow.ParcelRepository().GetBatch(ctx, cmd.ParcelIDs())
	if err != nil {
		return nil, err
	}

	var notHeld []string
	for _, p := range parcels {
		if !p.Status().IsDepotHeld() {
			notHeld = append(notHeld,
				fmt.Sprintf("%s (%s, %s)", p.ID(), p.TrackingCode(), p.Status()))
		}
	}
	if len(notHeld) > 0 {
		return nil, errs.NewConflictError("parcelIDs", "parcels are not held at a depot", notHeld...)
	}

	claimed, err := uow.DeliveryMissionRepository().ActiveMissionParcelIDs(ctx, cmd.ParcelIDs())
	if err != nil {
		return nil, err
	}
	if len(claimed) > 0 {
		ids := make([]string, 0, len(claimed))
		for _, id := range claimed {
			ids = append(ids, id.String())
		}
		return nil, errs.NewConflictError("parcelIDs", "parcels already on an active delivery mission", ids...)
	}

	m, err := mission.NewDeliveryMission(
		kernel.NewUUID(),
		cmd.DriverID(),
		cmd.WarehouseID(),
		cmd.DeliveryDate(),
		cmd.Requester().ID(),
		cmd.Notes(),
		cmd.ParcelIDs(),
	)
	if err != nil {
		return nil, err
	}

	if err := uow.DeliveryMissionRepository().Add(ctx, m); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ref := tracking.NewDeliveryRef(m.ID())
	for _, p := range parcels {
		successCode, failureCode, err := h.codeGenerator.GeneratePair(ctx,
			uow.ParcelRepository().SuccessCodeExists,
			uow.ParcelRepository().FailureCodeExists)
		if err != nil {
			return nil, err
		}
		if err := p.AssignDeliveryCodes(successCode, failureCode); err != nil {
			return nil, err
		}
		err = transitionParcel(ctx,
			uow.ParcelRepository(), uow.TrackingHistoryRepository(),
			p, parcel.InTransit, ref, cmd.Requester().ID(), "out for delivery", now)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}
