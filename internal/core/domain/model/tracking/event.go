// Package tracking models the append-only audit trail of parcel status
// changes. One event is written per transition, always inside the same
// transaction as the status move itself, so the newest event for a parcel
// always equals the parcel's current status.
package tracking

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"
)

// ErrEventIsNotConstructed is returned when an Event instance was not
// created through NewEvent or RestoreEvent.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// MissionKind tells which mission table a history event's mission reference
// points into.
type MissionKind string

const (
	// KindNone marks a transition not caused by a mission (intake, override).
	KindNone MissionKind = ""

	// KindPickup marks a transition caused by a pickup mission.
	KindPickup MissionKind = "pickup"

	// KindDelivery marks a transition caused by a delivery mission.
	KindDelivery MissionKind = "delivery"
)

// Validate checks the kind is one of the known values.
func (k MissionKind) Validate() error {
	switch k {
	case KindNone, KindPickup, KindDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"missionKind", fmt.Errorf("%q is not a mission kind", string(k)))
	}
}

// MissionRef points a history event at the mission that caused the
// transition. The zero value means no mission was involved.
type MissionRef struct {
	ID   kernel.UUID
	Kind MissionKind
}

// NewPickupRef builds a reference to a pickup mission.
func NewPickupRef(id kernel.UUID) MissionRef {
	return MissionRef{ID: id, Kind: KindPickup}
}

// NewDeliveryRef builds a reference to a delivery mission.
func NewDeliveryRef(id kernel.UUID) MissionRef {
	return MissionRef{ID: id, Kind: KindDelivery}
}

// IsZero reports whether the reference points at no mission.
func (r MissionRef) IsZero() bool {
	return r.Kind == KindNone
}

// Event is one immutable entry of a parcel's transition history.
// Events are created exactly once per transition and never mutated.
type Event struct {
	id         kernel.UUID
	parcelID   kernel.UUID
	fromStatus parcel.Status
	toStatus   parcel.Status
	mission    MissionRef
	actorID    kernel.UUID
	note       string
	occurredAt time.Time

	isConstructed bool
}

// NewEvent records a status transition on a parcel.
func NewEvent(
	id kernel.UUID,
	parcelID kernel.UUID,
	fromStatus parcel.Status,
	toStatus parcel.Status,
	mission MissionRef,
	actorID kernel.UUID,
	note string,
	occurredAt time.Time,
) (*Event, error) {
	e := &Event{
		mission:       mission,
		note:          note,
		occurredAt:    occurredAt,
		isConstructed: true,
	}

	if err := errors.Join(
		e.setID(id),
		e.setParcelID(parcelID),
		e.setStatuses(fromStatus, toStatus),
		e.setActorID(actorID),
		mission.Kind.Validate(),
	); err != nil {
		return nil, err
	}

	if !mission.IsZero() {
		if err := mission.ID.Validate(); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// RestoreEvent reconstructs an event from persistence.
// Used only by the repository layer.
func RestoreEvent(
	id kernel.UUID,
	parcelID kernel.UUID,
	fromStatus parcel.Status,
	toStatus parcel.Status,
	mission MissionRef,
	actorID kernel.UUID,
	note string,
	occurredAt time.Time,
) (*Event, error) {
	return NewEvent(id, parcelID, fromStatus, toStatus, mission, actorID, note, occurredAt)
}

// Validate ensures the event was created through a constructor.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// ParcelID returns the parcel the event belongs to.
func (e *Event) ParcelID() kernel.UUID {
	return e.parcelID
}

// FromStatus returns the status the parcel left.
func (e *Event) FromStatus() parcel.Status {
	return e.fromStatus
}

// ToStatus returns the status the parcel entered.
func (e *Event) ToStatus() parcel.Status {
	return e.toStatus
}

// Mission returns the mission reference, zero when no mission was involved.
func (e *Event) Mission() MissionRef {
	return e.mission
}

// ActorID returns the actor who caused the transition.
func (e *Event) ActorID() kernel.UUID {
	return e.actorID
}

// Note returns the free-text note attached to the transition.
func (e *Event) Note() string {
	return e.note
}

// OccurredAt returns when the transition happened.
func (e *Event) OccurredAt() time.Time {
	return e.occurredAt
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setParcelID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.parcelID = id
	return nil
}

func (e *Event) setStatuses(from, to parcel.Status) error {
	// Intake events enter Pending from nothing; from is allowed to be zero
	// only in that case.
	if from != parcel.UnknownStatus {
		if err := from.Validate(); err != nil {
			return err
		}
	}
	if err := to.Validate(); err != nil {
		return err
	}
	e.fromStatus = from
	e.toStatus = to
	return nil
}

func (e *Event) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.actorID = id
	return nil
}
