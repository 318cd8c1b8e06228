package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateDeliveryMissionCommandIsNotConstructed = errors.New(
	"CreateDeliveryMissionCommand must be created via NewCreateDeliveryMissionCommand constructor",
)

// CreateDeliveryMissionCommand assigns a driver to run depot-held parcels
// out for delivery.
type CreateDeliveryMissionCommand struct { //nolint:recvcheck //using for validation
	driverID     kernel.UUID
	warehouseID  kernel.UUID
	deliveryDate time.Time
	parcelIDs    []kernel.UUID
	notes        string
	requester    actor.Actor

	guard guard.ConstructorGuard
}

func NewCreateDeliveryMissionCommand(
	driverID kernel.UUID,
	warehouseID kernel.UUID,
	deliveryDate time.Time,
	parcelIDs []kernel.UUID,
	notes string,
	requester actor.Actor,
) (CreateDeliveryMissionCommand, error) {
	cmd := CreateDeliveryMissionCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setWarehouseID(warehouseID),
		cmd.setDeliveryDate(deliveryDate),
		cmd.setParcelIDs(parcelIDs),
		cmd.setRequester(requester),
	); err != nil {
		return CreateDeliveryMissionCommand{}, err
	}

	return cmd, nil
}

func (c CreateDeliveryMissionCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryMissionCommandIsNotConstructed)
}

func (c CreateDeliveryMissionCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CreateDeliveryMissionCommand) WarehouseID() kernel.UUID {
	return c.warehouseID
}

func (c CreateDeliveryMissionCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

func (c CreateDeliveryMissionCommand) ParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.parcelIDs))
	copy(ids, c.parcelIDs)
	return ids
}

func (c CreateDeliveryMissionCommand) Notes() string {
	return c.notes
}

func (c CreateDeliveryMissionCommand) Requester() actor.Actor {
	return c.requester
}

func (c *CreateDeliveryMissionCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *CreateDeliveryMissionCommand) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("warehouseID", err)
	}
	c.warehouseID = id
	return nil
}

func (c *CreateDeliveryMissionCommand) setDeliveryDate(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("deliveryDate")
	}
	c.deliveryDate = t
	return nil
}

func (c *CreateDeliveryMissionCommand) setParcelIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrParcelIDsAreRequired
	}
	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			return errs.NewValueIsInvalidError("parcelIDs")
		}
		seen[id] = struct{}{}
	}
	c.parcelIDs = append([]kernel.UUID(nil), ids...)
	return nil
}

func (c *CreateDeliveryMissionCommand) setRequester(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}
