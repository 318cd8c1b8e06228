package demand

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the review state of a demand.
//
//	Pending ──> Accepted ──> Completed (consumed by a pickup mission)
//	   │
//	   └──> Rejected
//
// A demand is "open" while Pending or Accepted; open membership is what
// blocks a parcel from joining a second demand.
type Status int

const (
	// UnknownStatus catches uninitialized Status values.
	UnknownStatus Status = iota

	// Pending means the demand awaits agency review.
	Pending

	// Accepted means a reviewer authorized the pickup.
	Accepted

	// Rejected means a reviewer declined the pickup.
	Rejected

	// Completed means a pickup mission consumed the demand.
	Completed
)

func statusStrings() map[Status]string {
	return map[Status]string{
		UnknownStatus: "Unknown",
		Pending:       "Pending",
		Accepted:      "Accepted",
		Rejected:      "Rejected",
		Completed:     "Completed",
	}
}

// StatusFromString parses the wire form of a demand status.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings() {
		if status != UnknownStatus && str == s {
			return status, nil
		}
	}
	return UnknownStatus, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a demand status", s))
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
			"status", fmt.Errorf("%d is not a valid demand status", s))
	}
	return nil
}

// IsOpen reports whether the demand still claims its member parcels.
func (s Status) IsOpen() bool {
	return s == Pending || s == Accepted
}

// IsReviewDecision reports whether the status is a value a reviewer may set.
func (s Status) IsReviewDecision() bool {
	return s == Accepted || s == Rejected || s == Completed
}
