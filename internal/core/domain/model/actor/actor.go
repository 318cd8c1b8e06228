package actor

import (
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// Role identifies the kind of authenticated user acting on the system.
// Authentication itself happens outside this service; every request arrives
// with an already resolved identity and role.
type Role int

const (
	// UnknownRole catches uninitialized Role values.
	UnknownRole Role = iota

	// Shipper originates parcels and files demands for pickup.
	Shipper

	// Agent reviews demands on behalf of an agency.
	Agent

	// Dispatcher builds pickup and delivery missions.
	Dispatcher

	// Driver executes missions and reports outcomes.
	Driver

	// Admin can perform every operation, including status overrides.
	Admin
)

func roleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "Unknown",
		Shipper:     "Shipper",
		Agent:       "Agent",
		Dispatcher:  "Dispatcher",
		Driver:      "Driver",
		Admin:       "Admin",
	}
}

// RoleFromString parses the wire form of a role, as carried in the
// X-Actor-Role header. Returns an error for unrecognized values.
func RoleFromString(s string) (Role, error) {
	for role, str := range roleStrings() {
		if role != UnknownRole && str == s {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// String returns the wire form of the role.
func (r Role) String() string {
	if s, ok := roleStrings()[r]; ok {
		return s
	}
	return "Unknown"
}

// Validate checks the role is one of the known values.
func (r Role) Validate() error {
	if _, ok := roleStrings()[r]; !ok || r == UnknownRole {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Capability names a privileged operation. Handlers check capabilities,
// never role names, so the role-to-privilege mapping lives in exactly one
// place.
type Capability int

const (
	// CapReviewDemand allows accepting, rejecting or completing a demand.
	CapReviewDemand Capability = iota + 1

	// CapCreateMission allows building pickup and delivery missions.
	CapCreateMission

	// CapViewSecurityCode allows reading a mission's completion code.
	CapViewSecurityCode

	// CapResolveDelivery allows reporting a per-parcel delivery outcome.
	CapResolveDelivery

	// CapUpdateMissionStatus allows driver-side mission progress updates.
	CapUpdateMissionStatus

	// CapOverrideParcelStatus allows administrative parcel status moves.
	CapOverrideParcelStatus

	// CapDeleteAnyDemand allows deleting demands regardless of ownership.
	CapDeleteAnyDemand
)

// capabilitiesByRole is the single authoritative role-to-privilege table.
func capabilitiesByRole() map[Role][]Capability {
	return map[Role][]Capability{
		Shipper: {},
		Agent:   {CapReviewDemand, CapDeleteAnyDemand},
		Dispatcher: {
			CapCreateMission, CapViewSecurityCode, CapResolveDelivery, CapUpdateMissionStatus,
		},
		Driver: {CapResolveDelivery, CapUpdateMissionStatus},
		Admin: {
			CapReviewDemand, CapCreateMission, CapViewSecurityCode, CapResolveDelivery,
			CapUpdateMissionStatus, CapOverrideParcelStatus, CapDeleteAnyDemand,
		},
	}
}

// Actor is the authenticated identity an operation runs as.
// It is a value object; the surrounding application resolves it once per
// request and hands it to every command and query.
type Actor struct {
	id   kernel.UUID
	role Role
}

// NewActor creates an actor from a resolved identity and role.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role}, nil
}

// ID returns the actor's identity.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Validate checks the actor carries a resolved identity and role.
func (a Actor) Validate() error {
	if err := a.id.Validate(); err != nil {
		return err
	}
	return a.role.Validate()
}

// Can reports whether the actor's role grants the capability.
func (a Actor) Can(capability Capability) bool {
	for _, c := range capabilitiesByRole()[a.role] {
		if c == capability {
			return true
		}
	}
	return false
}

// Require returns a PermissionDeniedError naming the attempted action when
// the actor lacks the capability.
func (a Actor) Require(capability Capability, action string) error {
	if !a.Can(capability) {
		return errs.NewPermissionDeniedError(a.role.String(), action)
	}
	return nil
}
