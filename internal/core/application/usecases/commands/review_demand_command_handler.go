package commands

import (
	"context"
	"fmt"
	"time"
)

// ReviewDemandCommandHandler applies an agency review decision to a
// demand. Review never touches parcel statuses; parcels move only when a
// pickup mission is created for the accepted demand.
type ReviewDemandCommandHandler struct {
	uowFactory DemandUoWFactory
}

// NewReviewDemandCommandHandler creates a handler for demand review.
func NewReviewDemandCommandHandler(uowFactory DemandUoWFactory) (ReviewDemandCommandHandler, error) {
	if uowFactory == nil {
		return ReviewDemandCommandHandler{}, ErrInvalidDemandUoWFactory
	}
	return ReviewDemandCommandHandler{uowFactory: uowFactory}, nil
}

// Handle loads the demand, applies the decision and stamps the reviewer.
func (h ReviewDemandCommandHandler) Handle(ctx context.Context, cmd ReviewDemandCommand) error {
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

	d, err := uow.DemandRepository().Get(ctx, cmd.DemandID())
	if err != nil {
		return err
	}

	if err := d.Review(cmd.Reviewer(), cmd.Decision(), cmd.Notes(), time.Now().UTC()); err != nil {
		return err
	}

	if err := uow.DemandRepository().Update(ctx, d); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
