package parcel

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrParcelIsNotConstructed is returned when a Parcel instance was not
// created through NewParcel or RestoreParcel.
var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel or RestoreParcel")

// ErrNoDeliveryCodesAssigned is returned when a delivery outcome is matched
// against a parcel that carries no active code pair.
var ErrNoDeliveryCodesAssigned = errors.New("parcel has no active delivery codes")

// Outcome is the result of matching a supplied code against a parcel's
// delivery code pair.
type Outcome int

const (
	// OutcomeUnknown catches uninitialized Outcome values.
	OutcomeUnknown Outcome = iota

	// OutcomeDelivered means the supplied code matched the success code.
	OutcomeDelivered

	// OutcomeFailed means the supplied code matched the failure code.
	OutcomeFailed
)

// Parcel is the aggregate root for a single shippable unit. It owns the
// parcel's status and the single-use delivery code pair.
//
// Invariants:
//   - Status only moves along the edges of the parcel status machine;
//     the persisted status always equals the newest tracking history entry
//     (the transition engine appends one record per move).
//   - The success and failure codes are set together at delivery-mission
//     assignment, are distinct, and are cleared once either one is consumed.
//   - Can only be created through NewParcel or RestoreParcel.
type Parcel struct {
	id           kernel.UUID
	trackingCode kernel.TrackingCode
	shipperID    kernel.UUID
	status       Status
	successCode  *string
	failureCode  *string
	warehouseID  *kernel.UUID

	isConstructed bool
}

// NewParcel registers a parcel at intake. The parcel starts Pending with no
// delivery codes and no warehouse.
func NewParcel(id kernel.UUID, trackingCode kernel.TrackingCode, shipperID kernel.UUID) (*Parcel, error) {
	p := &Parcel{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingCode(trackingCode),
		p.setShipperID(shipperID),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// RestoreParcel reconstructs a parcel from persistence, including its status,
// code pair and warehouse. Used only by the repository layer.
func RestoreParcel(
	id kernel.UUID,
	trackingCode kernel.TrackingCode,
	shipperID kernel.UUID,
	status Status,
	successCode *string,
	failureCode *string,
	warehouseID *kernel.UUID,
) (*Parcel, error) {
	p := &Parcel{
		successCode:   successCode,
		failureCode:   failureCode,
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingCode(trackingCode),
		p.setShipperID(shipperID),
		p.setStatus(status),
	); err != nil {
		return nil, err
	}

	if warehouseID != nil {
		if err := warehouseID.Validate(); err != nil {
			return nil, err
		}
		p.warehouseID = warehouseID
	}

	return p, nil
}

// Validate ensures the parcel was created through a constructor.
func (p *Parcel) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrParcelIsNotConstructed
	}
	return nil
}

// IsEqual compares two parcels by identity.
func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the parcel's unique identifier.
func (p *Parcel) ID() kernel.UUID {
	return p.id
}

// TrackingCode returns the external-facing tracking code.
func (p *Parcel) TrackingCode() kernel.TrackingCode {
	return p.trackingCode
}

// ShipperID returns the owning shipper's identifier.
func (p *Parcel) ShipperID() kernel.UUID {
	return p.shipperID
}

// Status returns the parcel's current status.
func (p *Parcel) Status() Status {
	return p.status
}

// SuccessCode returns the active success code, nil when none is assigned.
func (p *Parcel) SuccessCode() *string {
	return p.successCode
}

// FailureCode returns the active failure code, nil when none is assigned.
func (p *Parcel) FailureCode() *string {
	return p.failureCode
}

// WarehouseID returns the depot currently holding the parcel, nil when the
// parcel is not at a depot.
func (p *Parcel) WarehouseID() *kernel.UUID {
	return p.warehouseID
}

// TransitionTo moves the parcel along one edge of the status machine.
// Illegal edges are rejected with an InvalidTransitionError and the parcel
// is left unchanged.
func (p *Parcel) TransitionTo(next Status) error {
	if err := p.status.ValidateTransitionTo(next); err != nil {
		return err
	}
	p.status = next
	return nil
}

// SetWarehouse records the depot holding the parcel.
func (p *Parcel) SetWarehouse(warehouseID kernel.UUID) error {
	if err := warehouseID.Validate(); err != nil {
		return err
	}
	p.warehouseID = &warehouseID
	return nil
}

// AssignDeliveryCodes installs a fresh success/failure code pair.
// Only a depot-held parcel can be assigned to a delivery mission, and the
// two codes must differ. Any prior pair is rotated out.
func (p *Parcel) AssignDeliveryCodes(successCode, failureCode string) error {
	if !p.status.IsDepotHeld() {
		return errs.NewConflictError("parcel", "parcel is not at a depot", p.id.String())
	}
	if successCode == "" || failureCode == "" {
		return errs.NewValueIsRequiredError("delivery codes")
	}
	if strings.EqualFold(successCode, failureCode) {
		return errs.NewValueIsInvalidError("delivery codes must be distinct")
	}

	p.successCode = &successCode
	p.failureCode = &failureCode
	return nil
}

// MatchDeliveryCode resolves a supplied code against the active pair.
// The compare is case-insensitive. A parcel without an active pair cannot be
// resolved; a code matching neither returns ErrInvalidSecurityCode without
// revealing which side it missed.
func (p *Parcel) MatchDeliveryCode(supplied string) (Outcome, error) {
	if p.successCode == nil || p.failureCode == nil {
		return OutcomeUnknown, ErrNoDeliveryCodesAssigned
	}

	switch {
	case strings.EqualFold(supplied, *p.successCode):
		return OutcomeDelivered, nil
	case strings.EqualFold(supplied, *p.failureCode):
		return OutcomeFailed, nil
	default:
		return OutcomeUnknown, errs.ErrInvalidSecurityCode
	}
}

// ConsumeDeliveryCodes clears the code pair after an outcome is resolved.
// A subsequent delivery attempt requires a fresh mission assignment, which
// installs a new pair.
func (p *Parcel) ConsumeDeliveryCodes() {
	p.successCode = nil
	p.failureCode = nil
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingCode(code kernel.TrackingCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	p.trackingCode = code
	return nil
}

func (p *Parcel) setShipperID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.shipperID = id
	return nil
}

func (p *Parcel) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}
