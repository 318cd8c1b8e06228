package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/tracking"
)

// CompletePickupMissionCommandHandler verifies the mission security code
// and checks the whole collected batch into the depot. The code compare
// happens before any write; a mismatch leaves mission and parcels
// untouched. On match the mission closes and every linked parcel moves to
// AtDepot in one all-or-nothing transaction.
type CompletePickupMissionCommandHandler struct {
	uowFactory UoWFactory
}

func NewCompletePickupMissionCommandHandler(uowFactory UoWFactory) (CompletePickupMissionCommandHandler, error) {
	if uowFactory == nil {
		return CompletePickupMissionCommandHandler{}, ErrInvalidUoWFactory
	}
	return CompletePickupMissionCommandHandler{uowFactory: uowFactory}, nil
}

func (h CompletePickupMissionCommandHandler) Handle(
	ctx context.Context, cmd CompletePickupMissionCommand,
) (*mission.PickupMission, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Requester().Require(actor.CapUpdateMissionStatus, "complete pickup mission"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	m, err := uow.PickupMissionRepository().Get(ctx, cmd.MissionID())
	if err != nil {
		return nil, err
	}

	if err := m.Complete(cmd.SuppliedCode()); err != nil {
		return nil, err
	}

	if err := uow.PickupMissionRepository().Update(ctx, m); err != nil {
		return nil, err
	}

	parcels, err := uow.ParcelRepository().GetBatch(ctx, m.ParcelIDs())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	ref := tracking.NewPickupRef(m.ID())
	note := fmt.Sprintf("checked in at depot by mission %s", m.Number())
	for _, p := range parcels {
		if err := p.SetWarehouse(cmd.WarehouseID()); err != nil {
			return nil, err
		}
		err := transitionParcel(ctx,
			uow.ParcelRepository(), uow.TrackingHistoryRepository(),
			p, parcel.AtDepot, ref, cmd.Requester().ID(), note, now)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}
