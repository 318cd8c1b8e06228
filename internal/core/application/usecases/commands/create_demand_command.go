package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateDemandCommandIsNotConstructed = errors.New(
		"CreateDemandCommand must be created via NewCreateDemandCommand constructor",
	)
	ErrShipperEmailIsRequired = errors.New("shipper email is required")
	ErrParcelIDsAreRequired   = errors.New("at least one parcel id is required")
)

// CreateDemandCommand represents a shipper's request to batch pending
// parcels into a demand awaiting agency review.
//
// Example:
//
//	demandID := kernel.NewUUID()
//	cmd, err := NewCreateDemandCommand(demandID, "ship@acme.test", parcelIDs, "fragile")
//	if err != nil {
//	    return fmt.Errorf("invalid demand data: %w", err)
//	}
//
//	handler := NewCreateDemandCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create demand: %w", err)
//	}
type CreateDemandCommand struct { //nolint:recvcheck //using for validation
	demandID     kernel.UUID
	shipperEmail string
	parcelIDs    []kernel.UUID
	notes        string

	guard guard.ConstructorGuard
}

// NewCreateDemandCommand creates a command to file a new demand.
// Validates that the demand id is valid, the shipper email is present and
// at least one parcel id is supplied.
func NewCreateDemandCommand(
	demandID kernel.UUID,
	shipperEmail string,
	parcelIDs []kernel.UUID,
	notes string,
) (CreateDemandCommand, error) {
	cmd := CreateDemandCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDemandID(demandID),
		cmd.setShipperEmail(shipperEmail),
		cmd.setParcelIDs(parcelIDs),
	); err != nil {
		return CreateDemandCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDemandCommand) Validate() error {
	return c.guard.Validate(ErrCreateDemandCommandIsNotConstructed)
}

// DemandID returns the identifier the new demand will carry.
func (c CreateDemandCommand) DemandID() kernel.UUID {
	return c.demandID
}

// ShipperEmail returns the requesting shipper's email.
func (c CreateDemandCommand) ShipperEmail() string {
	return c.shipperEmail
}

// ParcelIDs returns the requested member parcels in order.
func (c CreateDemandCommand) ParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.parcelIDs))
	copy(ids, c.parcelIDs)
	return ids
}

// Notes returns the free-text notes for the demand.
func (c CreateDemandCommand) Notes() string {
	return c.notes
}

func (c *CreateDemandCommand) setDemandID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.demandID = id
	return nil
}

func (c *CreateDemandCommand) setShipperEmail(email string) error {
	if email == "" {
		return ErrShipperEmailIsRequired
	}
	c.shipperEmail = email
	return nil
}

func (c *CreateDemandCommand) setParcelIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrParcelIDsAreRequired
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.parcelIDs = append([]kernel.UUID(nil), ids...)
	return nil
}
