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

// UpdatePickupMissionStatusCommandHandler drives a pickup mission through
// its lifecycle. Driver scans (PickedUp) carry the member parcels forward,
// refusal and cancellation return them to the pending pool, and a move to
// Completed is routed through the completion verifier so the security code
// gate cannot be bypassed.
type UpdatePickupMissionStatusCommandHandler struct {
	uowFactory UoWFactory
	completer  CompletePickupMissionCommandHandler
}

func NewUpdatePickupMissionStatusCommandHandler(
	uowFactory UoWFactory,
	completer CompletePickupMissionCommandHandler,
) (UpdatePickupMissionStatusCommandHandler, error) {
	if uowFactory == nil {
		return UpdatePickupMissionStatusCommandHandler{}, ErrInvalidUoWFactory
	}
	return UpdatePickupMissionStatusCommandHandler{
		uowFactory: uowFactory,
		completer:  completer,
	}, nil
}

func (h UpdatePickupMissionStatusCommandHandler) Handle(
	ctx context.Context, cmd UpdatePickupMissionStatusCommand,
) (*mission.PickupMission, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if cmd.NewStatus() == mission.PickupCompleted {
		completeCmd, err := NewCompletePickupMissionCommand(
			cmd.MissionID(), cmd.SuppliedCode(), cmd.WarehouseID(), cmd.Requester())
		if err != nil {
			return nil, err
		}
		return h.completer.Handle(ctx, completeCmd)
	}

	if err := cmd.Requester().Require(actor.CapUpdateMissionStatus, "update pickup mission status"); err != nil {
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

	if err := m.TransitionTo(cmd.NewStatus()); err != nil {
		return nil, err
	}

	if err := uow.PickupMissionRepository().Update(ctx, m); err != nil {
		return nil, err
	}

	if err := h.moveParcels(ctx, uow, m, cmd); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// moveParcels applies the parcel-side effect of a mission move. Accepting
// a mission changes nothing for the parcels; a scan carries them to
// PickedUp; refusal and cancellation release them back to Pending.
func (h UpdatePickupMissionStatusCommandHandler) moveParcels(
	ctx context.Context, uow UoW, m *mission.PickupMission, cmd UpdatePickupMissionStatusCommand,
) error {
	var (
		target parcel.Status
		note   string
	)
	switch cmd.NewStatus() {
	case mission.PickupCollected:
		target = parcel.PickedUp
		note = fmt.Sprintf("collected by pickup mission %s", m.Number())
	case mission.PickupRefused:
		target = parcel.Pending
		note = fmt.Sprintf("pickup mission %s refused by driver", m.Number())
	case mission.PickupCancelled:
		target = parcel.Pending
		note = fmt.Sprintf("pickup mission %s cancelled", m.Number())
	default:
		return nil
	}

	parcels, err := uow.ParcelRepository().GetBatch(ctx, m.ParcelIDs())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	ref := tracking.NewPickupRef(m.ID())
	for _, p := range parcels {
		err := transitionParcel(ctx,
			uow.ParcelRepository(), uow.TrackingHistoryRepository(),
			p, target, ref, cmd.Requester().ID(), note, now)
		if err != nil {
			return err
		}
	}
	return nil
}
