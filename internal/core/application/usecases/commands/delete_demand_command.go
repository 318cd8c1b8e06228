package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDeleteDemandCommandIsNotConstructed = errors.New(
	"DeleteDemandCommand must be created via NewDeleteDemandCommand constructor",
)

// DeleteDemandCommand removes a demand that has not been accepted.
type DeleteDemandCommand struct { //nolint:recvcheck //using for validation
	demandID  kernel.UUID
	requester actor.Actor

	guard guard.ConstructorGuard
}

func NewDeleteDemandCommand(demandID kernel.UUID, requester actor.Actor) (DeleteDemandCommand, error) {
	cmd := DeleteDemandCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setDemandID(demandID),
		cmd.setRequester(requester),
	); err != nil {
		return DeleteDemandCommand{}, err
	}

	return cmd, nil
}

func (c DeleteDemandCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDemandCommandIsNotConstructed)
}

func (c DeleteDemandCommand) DemandID() kernel.UUID {
	return c.demandID
}

func (c DeleteDemandCommand) Requester() actor.Actor {
	return c.requester
}

func (c *DeleteDemandCommand) setDemandID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.demandID = id
	return nil
}

func (c *DeleteDemandCommand) setRequester(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}
