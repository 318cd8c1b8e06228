package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/pkg/errs"
)

// ResolveDeliveryCommandHandler settles a single delivery attempt. The
// parcel's link must still be pending, anything else reads as not found.
// Then the supplied code is matched against the parcel's active pair
// before any write: the success code closes the link and marks the parcel
// Delivered, the failure code fails the link and sends the parcel back to
// the depot, anything else is rejected with no mutation. Either way the
// pair is consumed; a new attempt needs a fresh mission assignment. The
// mission itself closes when its last pending link resolves.
type ResolveDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

func NewResolveDeliveryCommandHandler(uowFactory UoWFactory) (ResolveDeliveryCommandHandler, error) {
	if uowFactory == nil {
		return ResolveDeliveryCommandHandler{}, ErrInvalidUoWFactory
	}
	return ResolveDeliveryCommandHandler{uowFactory: uowFactory}, nil
}

// Handle returns the resolved outcome and the parcel's new status.
func (h ResolveDeliveryCommandHandler) Handle(
	ctx context.Context, cmd ResolveDeliveryCommand,
) (parcel.Outcome, parcel.Status, error) {
	if err := cmd.Validate(); err != nil {
		return parcel.OutcomeUnknown, parcel.UnknownStatus, err
	}
	if err := cmd.Requester().Require(actor.CapResolveDelivery, "resolve delivery"); err != nil {
		return parcel.OutcomeUnknown, parcel.UnknownStatus, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return parcel.OutcomeUnknown, parcel.UnknownStatus, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	m, err := uow.DeliveryMissionRepository().Get(ctx, cmd.MissionID())
	if err != nil {
		return parcel.OutcomeUnknown, parcel.UnknownStatus, err
	}

	p, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return parcel.OutcomeUnknown, parcel.UnknownStatus, err
	}

	// Only a pending link is resolvable. A resolved or missing link reads
	// as not found before any code comparison, so resubmitting a stale
	// code after resolution cannot surface a different error.
	link, err := m.Link(cmd.ParcelID())
	if err != nil {
		return parcel.OutcomeUnknown, parcel.UnknownStatus, err
	}
	if link.Status != mission.LinkPending {
		return parcel.OutcomeUnknown, parcel.UnknownStatus,
			errs.NewObjectNotFoundError("parcel", cmd.ParcelID().String())
	}

	outcome, err := p.MatchDeliveryCode(cmd.SuppliedCode())
	if err != nil {
		return parcel.OutcomeUnknown, parcel.UnknownStatus, err
	}

	now := time.Now().UTC()
	if err := m.ResolveParcel(cmd.ParcelID(), outcome, now); err != nil {
		return parcel.OutcomeUnknown, parcel.UnknownStatus, err
	}

	target := parcel.Delivered
	note := "delivered to recipient"
	if outcome == parcel.OutcomeFailed {
		target = parcel.ReturnedToDepot
		note = "delivery failed, returned to depot"
	}

	p.ConsumeDeliveryCodes()
	ref := tracking.NewDeliveryRef(m.ID())
	err = transitionParcel(ctx,
		uow.ParcelRepository(), uow.TrackingHistoryRepository(),
		p, target, ref, cmd.Requester().ID(), note, now)
	if err != nil {
		return parcel.OutcomeUnknown, parcel.UnknownStatus, err
	}

	if err := uow.DeliveryMissionRepository().Update(ctx, m); err != nil {
		return parcel.OutcomeUnknown, parcel.UnknownStatus, err
	}

	if err := uow.Commit(ctx); err != nil {
		return parcel.OutcomeUnknown, parcel.UnknownStatus, err
	}
	return outcome, p.Status(), nil
}
