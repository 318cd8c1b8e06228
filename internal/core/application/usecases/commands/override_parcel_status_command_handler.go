package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/tracking"
)

// OverrideParcelStatusCommandHandler lets an administrator move a parcel
// without a mission. The transition still runs through the same engine as
// every other move, so illegal edges are rejected and the history stays
// gapless.
type OverrideParcelStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewOverrideParcelStatusCommandHandler(uowFactory UoWFactory) (OverrideParcelStatusCommandHandler, error) {
	if uowFactory == nil {
		return OverrideParcelStatusCommandHandler{}, ErrInvalidUoWFactory
	}
	return OverrideParcelStatusCommandHandler{uowFactory: uowFactory}, nil
}

func (h OverrideParcelStatusCommandHandler) Handle(ctx context.Context, cmd OverrideParcelStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Requester().Require(actor.CapOverrideParcelStatus, "override parcel status"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return err
	}

	err = transitionParcel(ctx,
		uow.ParcelRepository(), uow.TrackingHistoryRepository(),
		p, cmd.NewStatus(), tracking.MissionRef{}, cmd.Requester().ID(), cmd.Note(), time.Now().UTC())
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}
