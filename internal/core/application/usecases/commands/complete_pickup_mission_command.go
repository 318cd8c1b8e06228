package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCompletePickupMissionCommandIsNotConstructed = errors.New(
	"CompletePickupMissionCommand must be created via NewCompletePickupMissionCommand constructor",
)

// CompletePickupMissionCommand closes a pickup mission at the depot gate.
// The supplied code must match the mission security code; the warehouse
// identifies the depot the collected parcels are checked into.
type CompletePickupMissionCommand struct { //nolint:recvcheck //using for validation
	missionID    kernel.UUID
	suppliedCode string
	warehouseID  kernel.UUID
	requester    actor.Actor

	guard guard.ConstructorGuard
}

func NewCompletePickupMissionCommand(
	missionID kernel.UUID,
	suppliedCode string,
	warehouseID kernel.UUID,
	requester actor.Actor,
) (CompletePickupMissionCommand, error) {
	cmd := CompletePickupMissionCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setMissionID(missionID),
		cmd.setSuppliedCode(suppliedCode),
		cmd.setWarehouseID(warehouseID),
		cmd.setRequester(requester),
	); err != nil {
		return CompletePickupMissionCommand{}, err
	}

	return cmd, nil
}

func (c CompletePickupMissionCommand) Validate() error {
	return c.guard.Validate(ErrCompletePickupMissionCommandIsNotConstructed)
}

func (c CompletePickupMissionCommand) MissionID() kernel.UUID {
	return c.missionID
}

func (c CompletePickupMissionCommand) SuppliedCode() string {
	return c.suppliedCode
}

func (c CompletePickupMissionCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c CompletePickupMissionCommand) Requester() actor.Actor {
	return c.requester
}

func (c *CompletePickupMissionCommand) setMissionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.missionID = id
	return nil
}

func (c *CompletePickupMissionCommand) setSuppliedCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("suppliedCode")
	}
	c.suppliedCode = code
	return nil
}

func (c *CompletePickupMissionCommand) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseID", err)
	}
	c.warehouseID = id
	return nil
}

func (c *CompletePickupMissionCommand) setRequester(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}
