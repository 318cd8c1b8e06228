package demand

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrDemandIsNotConstructed is returned when a Demand instance was not
// created through NewDemand or RestoreDemand.
var ErrDemandIsNotConstructed = errors.New("Demand must be created via NewDemand or RestoreDemand")

// Demand is the aggregate root for a shipper's batch pickup request.
// It owns the ordered member parcel set and the review state.
//
// Invariants:
//   - A parcel belongs to at most one open demand; the repository enforces
//     this at creation time and the aggregate keeps members immutable after
//     construction.
//   - The requesting agency is resolved from the shipper at creation and
//     frozen; later shipper agency changes do not alter existing demands.
//   - Once Accepted, the demand can no longer be deleted; once consumed by a
//     mission it becomes Completed and immutable.
type Demand struct {
	id         kernel.UUID
	shipperID  kernel.UUID
	agencyID   kernel.UUID
	status     Status
	reviewerID *kernel.UUID
	reviewedAt *time.Time
	notes      string
	parcelIDs  []kernel.UUID

	isConstructed bool
}

// NewDemand files a new demand for the given shipper and member parcels.
// The agency is the shipper's agency at this moment, frozen onto the demand.
func NewDemand(
	id kernel.UUID,
	shipperID kernel.UUID,
	agencyID kernel.UUID,
	parcelIDs []kernel.UUID,
	notes string,
) (*Demand, error) {
	d := &Demand{
		status:        Pending,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setShipperID(shipperID),
		d.setAgencyID(agencyID),
		d.setParcelIDs(parcelIDs),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDemand reconstructs a demand from persistence.
// Used only by the repository layer.
func RestoreDemand(
	id kernel.UUID,
	shipperID kernel.UUID,
	agencyID kernel.UUID,
	status Status,
	reviewerID *kernel.UUID,
	reviewedAt *time.Time,
	notes string,
	parcelIDs []kernel.UUID,
) (*Demand, error) {
	d := &Demand{
		reviewedAt:    reviewedAt,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setShipperID(shipperID),
		d.setAgencyID(agencyID),
		d.setStatus(status),
		d.setParcelIDs(parcelIDs),
	); err != nil {
		return nil, err
	}

	if reviewerID != nil {
		if err := reviewerID.Validate(); err != nil {
			return nil, err
		}
		d.reviewerID = reviewerID
	}

	return d, nil
}

// Validate ensures the demand was created through a constructor.
func (d *Demand) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDemandIsNotConstructed
	}
	return nil
}

// IsEqual compares two demands by identity.
func (d *Demand) IsEqual(other *Demand) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the demand's unique identifier.
func (d *Demand) ID() kernel.UUID {
	return d.id
}

// ShipperID returns the requesting shipper.
func (d *Demand) ShipperID() kernel.UUID {
	return d.shipperID
}

// AgencyID returns the agency frozen onto the demand at creation.
func (d *Demand) AgencyID() kernel.UUID {
	return d.agencyID
}

// Status returns the demand's review state.
func (d *Demand) Status() Status {
	return d.status
}

// ReviewerID returns the reviewer identity, nil before any review.
func (d *Demand) ReviewerID() *kernel.UUID {
	return d.reviewerID
}

// ReviewedAt returns the review timestamp, nil before any review.
func (d *Demand) ReviewedAt() *time.Time {
	return d.reviewedAt
}

// Notes returns the free-text notes attached at creation or review.
func (d *Demand) Notes() string {
	return d.notes
}

// ParcelIDs returns the ordered member parcel identifiers.
func (d *Demand) ParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(d.parcelIDs))
	copy(ids, d.parcelIDs)
	return ids
}

// Review records the reviewer's decision. Only actors with the review
// capability may decide; the decision must be one of Accepted, Rejected or
// Completed. A demand already consumed into a mission is immutable.
// Reviewing does not touch member parcel status.
func (d *Demand) Review(reviewer actor.Actor, decision Status, notes string, reviewedAt time.Time) error {
	if err := reviewer.Require(actor.CapReviewDemand, "review demand"); err != nil {
		return err
	}
	if d.status == Completed {
		return errs.NewConflictError("demand", "consumed demand is immutable", d.id.String())
	}
	if !decision.IsReviewDecision() {
		return errs.NewValueIsInvalidError("decision")
	}

	reviewerID := reviewer.ID()
	d.status = decision
	d.reviewerID = &reviewerID
	d.reviewedAt = &reviewedAt
	if notes != "" {
		d.notes = notes
	}
	return nil
}

// MarkConsumed moves an accepted demand to Completed when a pickup mission
// swallows it. Only an Accepted demand can be consumed.
func (d *Demand) MarkConsumed() error {
	if d.status != Accepted {
		return errs.NewConflictError("demand", "demand is not accepted", d.id.String())
	}
	d.status = Completed
	return nil
}

// CanBeDeletedBy reports whether the given actor may delete the demand.
// Accepted demands are immune to deletion. Shippers may delete only their
// own demands; actors holding CapDeleteAnyDemand may delete any.
func (d *Demand) CanBeDeletedBy(a actor.Actor) error {
	if d.status == Accepted {
		return errs.NewConflictError("demand", "accepted demand cannot be deleted", d.id.String())
	}
	if a.Can(actor.CapDeleteAnyDemand) {
		return nil
	}
	if a.Role() == actor.Shipper && a.ID().IsEqual(d.shipperID) {
		return nil
	}
	return errs.NewPermissionDeniedError(a.Role().String(), "delete demand")
}

func (d *Demand) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Demand) setShipperID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.shipperID = id
	return nil
}

func (d *Demand) setAgencyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.agencyID = id
	return nil
}

func (d *Demand) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Demand) setParcelIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("parcelIds")
	}

	seen := make(map[kernel.UUID]struct{}, len(ids))
	members := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("parcelIds",
				errors.New("duplicate parcel id "+id.String()))
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}

	d.parcelIDs = members
	return nil
}
