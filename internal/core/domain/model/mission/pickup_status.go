package mission

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PickupStatus represents the lifecycle state of a pickup mission.
//
//	Pending ──> Accepted ──> PickedUp ──> Completed
//	   │            │
//	   ├──> Refused └──> Cancelled
//	   └──> Cancelled
//
// A mission is "active" while Pending, Accepted or PickedUp; active
// membership is what makes a demand exclusive to one mission at a time.
type PickupStatus int

const (
	// PickupUnknown catches uninitialized PickupStatus values.
	PickupUnknown PickupStatus = iota

	// PickupPending means the mission awaits the driver's response.
	PickupPending

	// PickupAccepted means the driver took the mission.
	PickupAccepted

	// PickupCollected means the driver scanned the parcels at the shippers.
	PickupCollected

	// PickupCompleted means the depot verified the completion code; terminal.
	PickupCompleted

	// PickupRefused means the driver declined the mission; terminal.
	PickupRefused

	// PickupCancelled means a dispatcher or the expiry sweep withdrew the
	// mission; terminal.
	PickupCancelled
)

func pickupStatusStrings() map[PickupStatus]string {
	return map[PickupStatus]string{
		PickupUnknown:   "Unknown",
		PickupPending:   "Pending",
		PickupAccepted:  "Accepted",
		PickupCollected: "PickedUp",
		PickupCompleted: "Completed",
		PickupRefused:   "Refused",
		PickupCancelled: "Cancelled",
	}
}

func pickupTransitionTable() map[PickupStatus][]PickupStatus {
	return map[PickupStatus][]PickupStatus{
		PickupPending:   {PickupAccepted, PickupRefused, PickupCancelled},
		PickupAccepted:  {PickupCollected, PickupCancelled},
		PickupCollected: {PickupCompleted},
		PickupCompleted: {},
		PickupRefused:   {},
		PickupCancelled: {},
	}
}

// PickupStatusFromString parses the wire form of a pickup mission status.
func PickupStatusFromString(s string) (PickupStatus, error) {
	for status, str := range pickupStatusStrings() {
		if status != PickupUnknown && str == s {
			return status, nil
		}
	}
	return PickupUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a pickup mission status", s))
}

// String returns the wire form of the status.
func (s PickupStatus) String() string {
	if str, ok := pickupStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks the status is one of the known values.
func (s PickupStatus) Validate() error {
	if _, ok := pickupStatusStrings()[s]; !ok || s == PickupUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid pickup mission status", s))
	}
	return nil
}

// CanTransitionTo reports whether the machine allows moving to next.
func (s PickupStatus) CanTransitionTo(next PickupStatus) bool {
	for _, allowed := range pickupTransitionTable()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransitionTo returns an InvalidTransitionError when the edge from
// the current status to next does not exist.
func (s PickupStatus) ValidateTransitionTo(next PickupStatus) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(next) {
		return errs.NewInvalidTransitionError("pickup mission", s.String(), next.String())
	}
	return nil
}

// IsActive reports whether the mission still claims its demands and parcels.
func (s PickupStatus) IsActive() bool {
	return s == PickupPending || s == PickupAccepted || s == PickupCollected
}

// IsTerminal reports whether no edge leaves the status.
func (s PickupStatus) IsTerminal() bool {
	return len(pickupTransitionTable()[s]) == 0
}
