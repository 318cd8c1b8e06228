package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/tracking"
)

// RegisterParcelCommandHandler takes a shipper's parcel into the system.
// The intake itself is the first history entry, so a parcel's log is
// complete from its first second.
type RegisterParcelCommandHandler struct {
	uowFactory UoWFactory
}

func NewRegisterParcelCommandHandler(uowFactory UoWFactory) (RegisterParcelCommandHandler, error) {
	if uowFactory == nil {
		return RegisterParcelCommandHandler{}, ErrInvalidUoWFactory
	}
	return RegisterParcelCommandHandler{uowFactory: uowFactory}, nil
}

// Handle returns the registered parcel so the caller can surface the
// generated tracking code.
func (h RegisterParcelCommandHandler) Handle(
	ctx context.Context, cmd RegisterParcelCommand,
) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipper, err := uow.StaffDirectory().ShipperByEmail(ctx, cmd.ShipperEmail())
	if err != nil {
		return nil, err
	}

	trackingCode, err := kernel.NewTrackingCode()
	if err != nil {
		return nil, err
	}

	p, err := parcel.NewParcel(cmd.ParcelID(), trackingCode, shipper.ID)
	if err != nil {
		return nil, err
	}

	if err := uow.ParcelRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	event, err := tracking.NewEvent(
		kernel.NewUUID(), p.ID(), parcel.UnknownStatus, parcel.Pending,
		tracking.MissionRef{}, shipper.ID, "parcel registered", time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := uow.TrackingHistoryRepository().Append(ctx, event); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return p, nil
}
