package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/demand"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrReviewDemandCommandIsNotConstructed = errors.New(
	"ReviewDemandCommand must be created via NewReviewDemandCommand constructor",
)

// ReviewDemandCommand records an agency decision on a pending demand.
type ReviewDemandCommand struct { //nolint:recvcheck //using for validation
	demandID kernel.UUID
	reviewer actor.Actor
	decision demand.Status
	notes    string

	guard guard.ConstructorGuard
}

// NewReviewDemandCommand creates a command to accept, reject or complete
// a demand. Only review decision statuses are allowed.
func NewReviewDemandCommand(
	demandID kernel.UUID,
	reviewer actor.Actor,
	decision demand.Status,
	notes string,
) (ReviewDemandCommand, error) {
	cmd := ReviewDemandCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDemandID(demandID),
		cmd.setReviewer(reviewer),
		cmd.setDecision(decision),
	); err != nil {
		return ReviewDemandCommand{}, err
	}

	return cmd, nil
}

func (c ReviewDemandCommand) Validate() error {
	return c.guard.Validate(ErrReviewDemandCommandIsNotConstructed)
}

func (c ReviewDemandCommand) DemandID() kernel.UUID {
	return c.demandID
}

func (c ReviewDemandCommand) Reviewer() actor.Actor {
	return c.reviewer
}

func (c ReviewDemandCommand) Decision() demand.Status {
	return c.decision
}

func (c ReviewDemandCommand) Notes() string {
	return c.notes
}

func (c *ReviewDemandCommand) setDemandID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.demandID = id
	return nil
}

func (c *ReviewDemandCommand) setReviewer(reviewer actor.Actor) error {
	if err := reviewer.Validate(); err != nil {
		return err
	}
	c.reviewer = reviewer
	return nil
}

func (c *ReviewDemandCommand) setDecision(decision demand.Status) error {
	if !decision.IsReviewDecision() {
		return errs.NewValueIsInvalidError("decision")
	}
	c.decision = decision
	return nil
}
