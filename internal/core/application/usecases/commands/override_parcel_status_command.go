package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/guard"
)

var ErrOverrideParcelStatusCommandIsNotConstructed = errors.New(
	"OverrideParcelStatusCommand must be created via NewOverrideParcelStatusCommand constructor",
)

// OverrideParcelStatusCommand moves a parcel by administrative decision.
// The move still has to follow a legal edge and is history-logged like any
// other transition.
type OverrideParcelStatusCommand struct { //nolint:recvcheck //using for validation
	parcelID  kernel.UUID
	newStatus parcel.Status
	note      string
	requester actor.Actor

	guard guard.ConstructorGuard
}

func NewOverrideParcelStatusCommand(
	parcelID kernel.UUID,
	newStatus parcel.Status,
	note string,
	requester actor.Actor,
) (OverrideParcelStatusCommand, error) {
	cmd := OverrideParcelStatusCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setNewStatus(newStatus),
		cmd.setRequester(requester),
	); err != nil {
		return OverrideParcelStatusCommand{}, err
	}

	return cmd, nil
}

func (c OverrideParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrOverrideParcelStatusCommandIsNotConstructed)
}

func (c OverrideParcelStatusCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c OverrideParcelStatusCommand) NewStatus() parcel.Status {
	return c.newStatus
}

func (c OverrideParcelStatusCommand) Note() string {
	return c.note
}

func (c OverrideParcelStatusCommand) Requester() actor.Actor {
	return c.requester
}

func (c *OverrideParcelStatusCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.parcelID = id
	return nil
}

func (c *OverrideParcelStatusCommand) setNewStatus(status parcel.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.newStatus = status
	return nil
}

func (c *OverrideParcelStatusCommand) setRequester(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}
