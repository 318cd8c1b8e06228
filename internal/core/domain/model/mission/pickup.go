package mission

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrPickupMissionIsNotConstructed is returned when a PickupMission instance
// was not created through NewPickupMission or RestorePickupMission.
var ErrPickupMissionIsNotConstructed = errors.New(
	"PickupMission must be created via NewPickupMission or RestorePickupMission")

// missionNumberPattern matches the human-readable mission number, e.g.
// "PM-2026-0042".
var missionNumberPattern = regexp.MustCompile(`^PM-\d{4}-\d{4,}$`)

// FormatMissionNumber builds the human-readable mission number from a year
// and a per-year sequence.
func FormatMissionNumber(year int, sequence int) string {
	return fmt.Sprintf("PM-%04d-%04d", year, sequence)
}

// PickupMission is the aggregate root for a driver assignment that collects
// parcels belonging to one or more accepted demands.
//
// Invariants:
//   - A demand is linked to at most one mission whose status is active
//     (Pending, Accepted, PickedUp); the mission builder re-validates this
//     inside the creation transaction.
//   - The completion security code is generated once at creation time,
//     persisted with the mission, and compared case-insensitively. This
//     repository deliberately uses the persisted-random strategy; the code
//     is never derivable from mission number, driver or date.
//   - Completed, Refused and Cancelled are terminal.
type PickupMission struct {
	id           kernel.UUID
	number       string
	driverID     kernel.UUID
	status       PickupStatus
	securityCode string
	scheduledAt  time.Time
	createdBy    kernel.UUID
	notes        string
	demandIDs    []kernel.UUID
	parcelIDs    []kernel.UUID

	isConstructed bool
}

// NewPickupMission creates a mission in Pending status linking the given
// demands and their member parcels. The security code must already be
// uniqueness-checked by the caller's transaction.
func NewPickupMission(
	id kernel.UUID,
	number string,
	driverID kernel.UUID,
	securityCode string,
	scheduledAt time.Time,
	createdBy kernel.UUID,
	notes string,
	demandIDs []kernel.UUID,
	parcelIDs []kernel.UUID,
) (*PickupMission, error) {
	m := &PickupMission{
		status:        PickupPending,
		scheduledAt:   scheduledAt,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		m.setID(id),
		m.setNumber(number),
		m.setDriverID(driverID),
		m.setSecurityCode(securityCode),
		m.setCreatedBy(createdBy),
		m.setDemandIDs(demandIDs),
		m.setParcelIDs(parcelIDs),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RestorePickupMission reconstructs a mission from persistence.
// Used only by the repository layer.
func RestorePickupMission(
	id kernel.UUID,
	number string,
	driverID kernel.UUID,
	status PickupStatus,
	securityCode string,
	scheduledAt time.Time,
	createdBy kernel.UUID,
	notes string,
	demandIDs []kernel.UUID,
	parcelIDs []kernel.UUID,
) (*PickupMission, error) {
	m := &PickupMission{
		scheduledAt:   scheduledAt,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		m.setID(id),
		m.setNumber(number),
		m.setDriverID(driverID),
		m.setStatus(status),
		m.setSecurityCode(securityCode),
		m.setCreatedBy(createdBy),
		m.setDemandIDs(demandIDs),
		m.setParcelIDs(parcelIDs),
	); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate ensures the mission was created through a constructor.
func (m *PickupMission) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrPickupMissionIsNotConstructed
	}
	return nil
}

// IsEqual compares two missions by identity.
func (m *PickupMission) IsEqual(other *PickupMission) bool {
	return other != nil && m.id.IsEqual(other.id)
}

// ID returns the mission's unique identifier.
func (m *PickupMission) ID() kernel.UUID {
	return m.id
}

// Number returns the human-readable mission number.
func (m *PickupMission) Number() string {
	return m.number
}

// DriverID returns the assigned driver.
func (m *PickupMission) DriverID() kernel.UUID {
	return m.driverID
}

// Status returns the mission's current status.
func (m *PickupMission) Status() PickupStatus {
	return m.status
}

// SecurityCode returns the persisted completion code.
// Exposure over the wire is gated by a capability check in the query layer.
func (m *PickupMission) SecurityCode() string {
	return m.securityCode
}

// ScheduledAt returns the planned pickup time.
func (m *PickupMission) ScheduledAt() time.Time {
	return m.scheduledAt
}

// CreatedBy returns the dispatcher who built the mission.
func (m *PickupMission) CreatedBy() kernel.UUID {
	return m.createdBy
}

// Notes returns the free-text notes attached at creation.
func (m *PickupMission) Notes() string {
	return m.notes
}

// DemandIDs returns the linked demand identifiers in link order.
func (m *PickupMission) DemandIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(m.demandIDs))
	copy(ids, m.demandIDs)
	return ids
}

// ParcelIDs returns the linked parcel identifiers in link order, derived
// transitively from the linked demands at creation time.
func (m *PickupMission) ParcelIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(m.parcelIDs))
	copy(ids, m.parcelIDs)
	return ids
}

// TransitionTo moves the mission along one edge of the pickup machine.
func (m *PickupMission) TransitionTo(next PickupStatus) error {
	if err := m.status.ValidateTransitionTo(next); err != nil {
		return err
	}
	m.status = next
	return nil
}

// VerifyCompletionCode checks a driver-supplied code against the persisted
// one, case-insensitively. A mismatch yields ErrInvalidSecurityCode and
// nothing more; the caller learns only that the code did not match.
func (m *PickupMission) VerifyCompletionCode(supplied string) error {
	if !strings.EqualFold(strings.TrimSpace(supplied), m.securityCode) {
		return errs.ErrInvalidSecurityCode
	}
	return nil
}

// Complete verifies the supplied code then moves the mission to Completed.
// The mission must be in PickedUp status; the caller transitions the member
// parcels to AtDepot inside the same transaction.
func (m *PickupMission) Complete(suppliedCode string) error {
	if err := m.VerifyCompletionCode(suppliedCode); err != nil {
		return err
	}
	return m.TransitionTo(PickupCompleted)
}

func (m *PickupMission) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *PickupMission) setNumber(number string) error {
	if !missionNumberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("missionNumber",
			fmt.Errorf("%q does not match PM-<year>-<seq>", number))
	}
	m.number = number
	return nil
}

func (m *PickupMission) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.driverID = id
	return nil
}

func (m *PickupMission) setStatus(status PickupStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	m.status = status
	return nil
}

func (m *PickupMission) setSecurityCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("securityCode")
	}
	m.securityCode = strings.ToUpper(code)
	return nil
}

func (m *PickupMission) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.createdBy = id
	return nil
}

func (m *PickupMission) setDemandIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("demandIds")
	}
	members := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		members = append(members, id)
	}
	m.demandIDs = members
	return nil
}

func (m *PickupMission) setParcelIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("parcelIds")
	}
	members := make([]kernel.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		members = append(members, id)
	}
	m.parcelIDs = members
	return nil
}
