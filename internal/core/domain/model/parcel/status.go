package parcel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a parcel.
//
// Happy path:
//
//	Pending -> ToPickup -> PickedUp -> AtDepot -> InTransit -> Delivered -> DeliveredPaid
//
// Branches:
//
//	ToPickup -> Pending                 (pickup mission cancelled)
//	InTransit -> ReturnedToDepot        (delivery attempt failed)
//	ReturnedToDepot -> InTransit        (redelivery on a fresh mission)
//	ReturnedToDepot -> DefinitiveReturn (return workflow started)
//	DefinitiveReturn -> ReturnedToSender
//
// Every legal move is an explicit edge in transitionTable; anything else is
// rejected with an InvalidTransitionError.
type Status int

const (
	// UnknownStatus catches uninitialized Status values.
	UnknownStatus Status = iota

	// Pending is the intake state: registered, not yet claimed by a mission.
	Pending

	// ToPickup means the parcel is a member of a scheduled pickup mission.
	ToPickup

	// PickedUp means the driver has collected the parcel from the shipper.
	PickedUp

	// AtDepot means the parcel is held at a warehouse between missions.
	AtDepot

	// InTransit means the parcel rides a delivery mission toward the recipient.
	InTransit

	// Delivered means the recipient confirmed receipt with the success code.
	Delivered

	// ReturnedToDepot means the delivery attempt failed and the parcel is
	// back at the warehouse.
	ReturnedToDepot

	// DeliveredPaid is the terminal paid state after delivery.
	DeliveredPaid

	// DefinitiveReturn means the operator abandoned delivery; the parcel
	// waits for the return-to-sender run.
	DefinitiveReturn

	// ReturnedToSender is the terminal state of the return workflow.
	ReturnedToSender
)

func statusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus:    "Unknown",
		Pending:          "Pending",
		ToPickup:         "ToPickup",
		PickedUp:         "PickedUp",
		AtDepot:          "AtDepot",
		InTransit:        "InTransit",
		Delivered:        "Delivered",
		ReturnedToDepot:  "ReturnedToDepot",
		DeliveredPaid:    "DeliveredPaid",
		DefinitiveReturn: "DefinitiveReturn",
		ReturnedToSender: "ReturnedToSender",
	}
}

// transitionTable is the authoritative edge set of the parcel status machine.
func transitionTable() map[Status][]Status {
	return map[Status][]Status{
		Pending:          {ToPickup},
		ToPickup:         {PickedUp, Pending},
		PickedUp:         {AtDepot},
		AtDepot:          {InTransit},
		InTransit:        {Delivered, ReturnedToDepot},
		Delivered:        {DeliveredPaid},
		ReturnedToDepot:  {InTransit, DefinitiveReturn},
		DefinitiveReturn: {ReturnedToSender},
		DeliveredPaid:    {},
		ReturnedToSender: {},
	}
}

// StatusFromString parses the wire form of a parcel status.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if status != UnknownStatus && str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a parcel status", s))
}

// String returns the wire form of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks the status is one of the known values.
func (s Status) Validate() error {
	if _, ok := statusStrings()[s]; !ok || s == UnknownStatus {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid parcel status", s))
	}
	return nil
}

// CanTransitionTo reports whether the machine allows moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitionTable()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransitionTo returns an InvalidTransitionError when the edge from
// the current status to next does not exist.
func (s Status) ValidateTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(next) {
		return errs.NewInvalidTransitionError("parcel", s.String(), next.String())
	}
	return nil
}

// IsTerminal reports whether no edge leaves the status.
func (s Status) IsTerminal() bool {
	return len(transitionTable()[s]) == 0
}

// IsDepotHeld reports whether the parcel physically sits at a warehouse and
// is eligible to join a delivery mission.
func (s Status) IsDepotHeld() bool {
	return s == AtDepot || s == ReturnedToDepot
}
