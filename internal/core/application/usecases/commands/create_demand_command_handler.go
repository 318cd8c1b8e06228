package commands

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/demand"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"
)

var ErrInvalidDemandUoWFactory = errors.New("invalid demand unit of work factory")

// CreateDemandCommandHandler files a new demand for a batch of pending
// parcels. The whole batch is validated inside one transaction: every
// parcel must exist, be in the pending status, and not already belong to
// an open demand. A single unavailable parcel rejects the batch.
type CreateDemandCommandHandler struct {
	uowFactory DemandUoWFactory
}

// NewCreateDemandCommandHandler creates a handler for demand intake.
func NewCreateDemandCommandHandler(uowFactory DemandUoWFactory) (CreateDemandCommandHandler, error) {
	if uowFactory == nil {
		return CreateDemandCommandHandler{}, ErrInvalidDemandUoWFactory
	}
	return CreateDemandCommandHandler{uowFactory: uowFactory}, nil
}

// Handle resolves the shipper, checks availability of every requested
// parcel and persists the new demand in pending status.
func (h CreateDemandCommandHandler) Handle(ctx context.Context, cmd CreateDemandCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipper, err := uow.StaffDirectory().ShipperByEmail(ctx, cmd.ShipperEmail())
	if err != nil {
		return err
	}

	parcelIDs := cmd.ParcelIDs()
	parcels, err := uow.ParcelRepository().GetBatch(ctx, parcelIDs)
	if err != nil {
		return err
	}

	var unavailable []string
	for _, p := range parcels {
		if p.Status() != parcel.Pending {
			unavailable = append(unavailable,
				fmt.Sprintf("%s (%s, %s)", p.ID(), p.TrackingCode(), p.Status()))
		}
	}
	if len(unavailable) > 0 {
		return errs.NewConflictError("parcelIDs", "parcels are not pending", unavailable...)
	}

	claimed, err := uow.DemandRepository().OpenDemandParcelIDs(ctx, parcelIDs)
	if err != nil {
		return err
	}
	if len(claimed) > 0 {
		ids := make([]string, 0, len(claimed))
		for _, id := range claimed {
			ids = append(ids, id.String())
		}
		return errs.NewConflictError("parcelIDs", "parcels already belong to an open demand", ids...)
	}

	d, err := demand.NewDemand(cmd.DemandID(), shipper.ID, shipper.AgencyID, parcelIDs, cmd.Notes())
	if err != nil {
		return err
	}

	if err := uow.DemandRepository().Add(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
