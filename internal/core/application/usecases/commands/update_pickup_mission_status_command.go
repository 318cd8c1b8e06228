package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/pkg/guard"
)

var ErrUpdatePickupMissionStatusCommandIsNotConstructed = errors.New(
	"UpdatePickupMissionStatusCommand must be created via NewUpdatePickupMissionStatusCommand constructor",
)

// UpdatePickupMissionStatusCommand moves a pickup mission along its status
// machine. Moving to Completed requires the mission security code and is
// delegated to the completion flow.
type UpdatePickupMissionStatusCommand struct { //nolint:recvcheck //using for validation
	missionID    kernel.UUID
	newStatus    mission.PickupStatus
	suppliedCode string
	warehouseID  kernel.UUID
	requester    actor.Actor

	guard guard.ConstructorGuard
}

// NewUpdatePickupMissionStatusCommand creates a status-change command.
// suppliedCode and warehouseID are consulted only when the target status
// is Completed; the other moves ignore them.
func NewUpdatePickupMissionStatusCommand(
	missionID kernel.UUID,
	newStatus mission.PickupStatus,
	suppliedCode string,
	warehouseID kernel.UUID,
	requester actor.Actor,
) (UpdatePickupMissionStatusCommand, error) {
	cmd := UpdatePickupMissionStatusCommand{
		suppliedCode: suppliedCode,
		warehouseID:  warehouseID,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setMissionID(missionID),
		cmd.setNewStatus(newStatus),
		cmd.setRequester(requester),
	); err != nil {
		return UpdatePickupMissionStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdatePickupMissionStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePickupMissionStatusCommandIsNotConstructed)
}

func (c UpdatePickupMissionStatusCommand) MissionID() kernel.UUID {
	return c.missionID
}

func (c UpdatePickupMissionStatusCommand) NewStatus() mission.PickupStatus {
	return c.newStatus
}

func (c UpdatePickupMissionStatusCommand) SuppliedCode() string {
	return c.suppliedCode
}

func (c UpdatePickupMissionStatusCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c UpdatePickupMissionStatusCommand) Requester() actor.Actor {
	return c.requester
}

func (c *UpdatePickupMissionStatusCommand) setMissionID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.missionID = id
	return nil
}

func (c *UpdatePickupMissionStatusCommand) setNewStatus(status mission.PickupStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.newStatus = status
	return nil
}

func (c *UpdatePickupMissionStatusCommand) setRequester(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}
