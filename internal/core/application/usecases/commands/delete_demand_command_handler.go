package commands

import (
	"context"
	"fmt"
)

// DeleteDemandCommandHandler removes a demand and its membership links.
// Parcels themselves are never deleted. Accepted demands are immune to
// deletion for everybody, the accepted batch is already feeding mission
// planning.
type DeleteDemandCommandHandler struct {
	uowFactory DemandUoWFactory
}

func NewDeleteDemandCommandHandler(uowFactory DemandUoWFactory) (DeleteDemandCommandHandler, error) {
	if uowFactory == nil {
		return DeleteDemandCommandHandler{}, ErrInvalidDemandUoWFactory
	}
	return DeleteDemandCommandHandler{uowFactory: uowFactory}, nil
}

func (h DeleteDemandCommandHandler) Handle(ctx context.Context, cmd DeleteDemandCommand) error {
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

	if err := d.CanBeDeletedBy(cmd.Requester()); err != nil {
		return err
	}

	if err := uow.DemandRepository().Delete(ctx, d.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
