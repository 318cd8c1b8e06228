package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/ports"
)

// transitionParcel is the single choke point through which every parcel
// status change flows. It moves exactly one parcel along one edge and
// appends exactly one history record, both inside the caller's transaction.
//
// The write is conditional on the status the aggregate was loaded with:
// UpdateFromStatus re-checks the stored row inside the transaction and
// returns a StaleStateError when a concurrent transition won the race, so
// the caller can retry after a re-read instead of silently overwriting.
//
// Bulk operations (mission completion, mission expiry) call this once per
// parcel; whether the batch is all-or-nothing is decided by the caller's
// transaction scope, not here.
func transitionParcel(
	ctx context.Context,
	parcels ports.ParcelRepository,
	history ports.TrackingHistoryRepository,
	p *parcel.Parcel,
	to parcel.Status,
	missionRef tracking.MissionRef,
	actorID kernel.UUID,
	note string,
	occurredAt time.Time,
) error {
	from := p.Status()
	if err := p.TransitionTo(to); err != nil {
		return err
	}

	if err := parcels.UpdateFromStatus(ctx, p, from); err != nil {
		return err
	}

	event, err := tracking.NewEvent(
		kernel.NewUUID(), p.ID(), from, to, missionRef, actorID, note, occurredAt)
	if err != nil {
		return err
	}

	return history.Append(ctx, event)
}
