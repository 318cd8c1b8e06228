package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/tracking"
)

// ExpireOverduePickupMissionsCommandHandler cancels pickup missions that
// were never accepted before the cutoff. Each mission expires in its own
// transaction so one poisoned mission cannot block the rest of the sweep;
// within a mission, cancellation and parcel release are atomic.
//
// History records written by the sweep carry the configured system actor
// id, there is no human behind them.
type ExpireOverduePickupMissionsCommandHandler struct {
	uowFactory    UoWFactory
	systemActorID kernel.UUID
}

func NewExpireOverduePickupMissionsCommandHandler(
	uowFactory UoWFactory,
	systemActorID kernel.UUID,
) (ExpireOverduePickupMissionsCommandHandler, error) {
	if uowFactory == nil {
		return ExpireOverduePickupMissionsCommandHandler{}, ErrInvalidUoWFactory
	}
	if err := systemActorID.Validate(); err != nil {
		return ExpireOverduePickupMissionsCommandHandler{}, err
	}
	return ExpireOverduePickupMissionsCommandHandler{
		uowFactory:    uowFactory,
		systemActorID: systemActorID,
	}, nil
}

// Handle returns the number of missions expired.
func (h ExpireOverduePickupMissionsCommandHandler) Handle(
	ctx context.Context, cmd ExpireOverduePickupMissionsCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	overdue, err := uow.PickupMissionRepository().GetAllOverdue(ctx, cmd.Cutoff())
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil && err == nil {
		err = rollbackErr
	}
	if err != nil {
		return 0, err
	}

	expired := 0
	var firstErr error
	for _, m := range overdue {
		done, err := h.expireOne(ctx, m)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("expire mission %s: %w", m.Number(), err)
			}
			continue
		}
		if done {
			expired++
		}
	}

	return expired, firstErr
}

func (h ExpireOverduePickupMissionsCommandHandler) expireOne(
	ctx context.Context, m *mission.PickupMission,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	// Re-read inside the transaction; a driver may have accepted the
	// mission between the sweep query and now.
	fresh, err := uow.PickupMissionRepository().Get(ctx, m.ID())
	if err != nil {
		return false, err
	}
	if fresh.Status() != mission.PickupPending {
		return false, nil
	}

	if err := fresh.TransitionTo(mission.PickupCancelled); err != nil {
		return false, err
	}
	if err := uow.PickupMissionRepository().Update(ctx, fresh); err != nil {
		return false, err
	}

	parcels, err := uow.ParcelRepository().GetBatch(ctx, fresh.ParcelIDs())
	if err != nil {
		return false, err
	}

	now := time.Now().UTC()
	ref := tracking.NewPickupRef(fresh.ID())
	note := fmt.Sprintf("pickup mission %s expired", fresh.Number())
	for _, p := range parcels {
		err := transitionParcel(ctx,
			uow.ParcelRepository(), uow.TrackingHistoryRepository(),
			p, parcel.Pending, ref, h.systemActorID, note, now)
		if err != nil {
			return false, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
