package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrExpireOverduePickupMissionsCommandIsNotConstructed = errors.New(
	"ExpireOverduePickupMissionsCommand must be created via NewExpireOverduePickupMissionsCommand constructor",
)

// ExpireOverduePickupMissionsCommand cancels pickup missions nobody
// accepted before the cutoff and releases their parcels back to the
// pending pool.
type ExpireOverduePickupMissionsCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

func NewExpireOverduePickupMissionsCommand(cutoff time.Time) (ExpireOverduePickupMissionsCommand, error) {
	if cutoff.IsZero() {
		return ExpireOverduePickupMissionsCommand{}, errs.NewValueIsRequiredError("cutoff")
	}
	return ExpireOverduePickupMissionsCommand{
		cutoff: cutoff,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (c ExpireOverduePickupMissionsCommand) Validate() error {
	return c.guard.Validate(ErrExpireOverduePickupMissionsCommandIsNotConstructed)
}

func (c ExpireOverduePickupMissionsCommand) Cutoff() time.Time {
	return c.cutoff
}
