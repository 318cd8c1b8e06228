package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreatePickupMissionCommandIsNotConstructed = errors.New(
		"CreatePickupMissionCommand must be created via NewCreatePickupMissionCommand constructor",
	)
	ErrDemandIDsAreRequired = errors.New("at least one demand id is required")
)

// CreatePickupMissionCommand assigns a driver to collect the parcels of
// one or more accepted demands.
type CreatePickupMissionCommand struct { //nolint:recvcheck //using for validation
	driverID    kernel.UUID
	demandIDs   []kernel.UUID
	scheduledAt time.Time
	notes       string
	requester   actor.Actor

	guard guard.ConstructorGuard
}

func NewCreatePickupMissionCommand(
	driverID kernel.UUID,
	demandIDs []kernel.UUID,
	scheduledAt time.Time,
	notes string,
	requester actor.Actor,
) (CreatePickupMissionCommand, error) {
	cmd := CreatePickupMissionCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setDemandIDs(demandIDs),
		cmd.setScheduledAt(scheduledAt),
		cmd.setRequester(requester),
	); err != nil {
		return CreatePickupMissionCommand{}, err
	}

	return cmd, nil
}

func (c CreatePickupMissionCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickupMissionCommandIsNotConstructed)
}

func (c CreatePickupMissionCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c CreatePickupMissionCommand) DemandIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.demandIDs))
	copy(ids, c.demandIDs)
	return ids
}

func (c CreatePickupMissionCommand) ScheduledAt() time.Time {
	return c.scheduledAt
}

func (c CreatePickupMissionCommand) Notes() string {
	return c.notes
}

func (c CreatePickupMissionCommand) Requester() actor.Actor {
	return c.requester
}

func (c *CreatePickupMissionCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *CreatePickupMissionCommand) setDemandIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrDemandIDsAreRequired
	}
	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, ok := seen[id]; ok {
			return errs.NewValueIsInvalidError("demandIDs")
		}
		seen[id] = struct{}{}
	}
	c.demandIDs = append([]kernel.UUID(nil), ids...)
	return nil
}

func (c *CreatePickupMissionCommand) setScheduledAt(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("scheduledAt")
	}
	c.scheduledAt = t
	return nil
}

func (c *CreatePickupMissionCommand) setRequester(requester actor.Actor) error {
	if err := requester.Validate(); err != nil {
		return err
	}
	c.requester = requester
	return nil
}
