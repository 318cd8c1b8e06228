package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrResolveDeliveryCommandIsNotConstructed = errors.New(
	"ResolveDeliveryCommand must be created via NewResolveDeliveryCommand constructor",
)

// ResolveDeliveryCommand settles one delivery attempt: the supplied code
// decides whether the parcel was handed over or comes back to the depot.
type ResolveDeliveryCommand struct { //nolint:recvcheck //using for validation
	missionID    kernel.UUID
	parcelID     kernel.UUID
	suppliedCode string
	requester    actor.Actor

	guard guard.ConstructorGuard
}

func NewResolveDeliveryCommand(
	missionID kernel.UUID,
	parcelID kernel.UUID,
	suppliedCode string,
	requester actor.Actor,
) (ResolveDeliveryCommand, error) {
	cmd := ResolveDeliveryCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setMissionID(missionID),
		cmd.setParcelID(parcelID),
		cmd.setSuppliedCode(suppliedCode),
		cmd.setRequester(requester),
	); err != nil {
		return ResolveDeliveryCommand{}, err
	}

	return cmd, nil
}

func (c ResolveDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrResolveDeliveryCommandIsNotConstructed)
}

func (c ResolveDeliveryCommand) MissionID() kernel.UUID {
	return c.missionID
}

func (c ResolveDeliveryCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c ResolveDeliveryCommand) SuppliedCode() string {
	return c.suppliedCode
}

func (c ResolveDeliveryCommand) Requester() actor.Actor {
	return c.requester
}

func (c *ResolveDeliveryCommand) setMissionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.missionID = id
	return nil
}

func (c *ResolveDeliveryCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.parcelID = id
	return nil
}

func (c *ResolveDeliveryCommand) setSuppliedCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("suppliedCode")
	}
	c.suppliedCode = code
	return nil
}

func (c *ResolveDeliveryCommand) setRequester(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}
