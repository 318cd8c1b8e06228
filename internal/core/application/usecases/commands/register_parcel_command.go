package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterParcelCommandIsNotConstructed = errors.New(
	"RegisterParcelCommand must be created via NewRegisterParcelCommand constructor",
)

// RegisterParcelCommand takes a new parcel into the system on behalf of a
// shipper. The parcel starts Pending with a freshly minted tracking code.
type RegisterParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID     kernel.UUID
	shipperEmail string

	guard guard.ConstructorGuard
}

func NewRegisterParcelCommand(parcelID kernel.UUID, shipperEmail string) (RegisterParcelCommand, error) {
	cmd := RegisterParcelCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setParcelID(parcelID),
		cmd.setShipperEmail(shipperEmail),
	); err != nil {
		return RegisterParcelCommand{}, err
	}

	return cmd, nil
}

func (c RegisterParcelCommand) Validate() error {
	return c.guard.Validate(ErrRegisterParcelCommandIsNotConstructed)
}

func (c RegisterParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c RegisterParcelCommand) ShipperEmail() string {
	return c.shipperEmail
}

func (c *RegisterParcelCommand) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.parcelID = id
	return nil
}

func (c *RegisterParcelCommand) setShipperEmail(email string) error {
	if email == "" {
		return ErrShipperEmailIsRequired
	}
	c.shipperEmail = email
	return nil
}
