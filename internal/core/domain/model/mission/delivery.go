package mission

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"
)

// ErrDeliveryMissionIsNotConstructed is returned when a DeliveryMission
// instance was not created through NewDeliveryMission or
// RestoreDeliveryMission.
var ErrDeliveryMissionIsNotConstructed = errors.New(
	"DeliveryMission must be created via NewDeliveryMission or RestoreDeliveryMission")

// DeliveryStatus represents the lifecycle state of a delivery mission.
// It is derived from the aggregate resolution state of the mission's parcel
// links: the mission completes when no link remains pending.
type DeliveryStatus int

const (
	// DeliveryUnknown catches uninitialized DeliveryStatus values.
	DeliveryUnknown DeliveryStatus = iota

	// DeliveryScheduled means at least one parcel link awaits resolution.
	DeliveryScheduled

	// DeliveryCompleted means every parcel link has been resolved; terminal.
	DeliveryCompleted

	// DeliveryCancelled means a dispatcher withdrew the mission; terminal.
	DeliveryCancelled
)

func deliveryStatusStrings() map[DeliveryStatus]string {
	return map[DeliveryStatus]string{
		DeliveryUnknown:   "Unknown",
		DeliveryScheduled: "Scheduled",
		DeliveryCompleted: "Completed",
		DeliveryCancelled: "Cancelled",
	}
}

// String returns the wire form of the status.
func (s DeliveryStatus) String() string {
	if str, ok := deliveryStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks the status is one of the known values.
func (s DeliveryStatus) Validate() error {
	if _, ok := deliveryStatusStrings()[s]; !ok || s == DeliveryUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid delivery mission status", s))
	}
	return nil
}

// IsTerminal reports whether the mission can no longer change.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryCompleted || s == DeliveryCancelled
}

// LinkStatus is the resolution state of one parcel within a delivery mission.
type LinkStatus int

const (
	// LinkUnknown catches uninitialized LinkStatus values.
	LinkUnknown LinkStatus = iota

	// LinkPending means the delivery attempt has not been resolved yet.
	LinkPending

	// LinkCompleted means the success code was presented; parcel delivered.
	LinkCompleted

	// LinkFailed means the failure code was presented; parcel returns to depot.
	LinkFailed
)

func linkStatusStrings() map[LinkStatus]string {
	return map[LinkStatus]string{
		LinkUnknown:   "Unknown",
		LinkPending:   "Pending",
		LinkCompleted: "Completed",
		LinkFailed:    "Failed",
	}
}

// String returns the wire form of the link status.
func (s LinkStatus) String() string {
	if str, ok := linkStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks the link status is one of the known values.
func (s LinkStatus) Validate() error {
	if _, ok := linkStatusStrings()[s]; !ok || s == LinkUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"linkStatus", fmt.Errorf("%d is not a valid link status", s))
	}
	return nil
}

// ParcelLink is one sequence-ordered parcel membership within a delivery
// mission, carrying the per-link resolution state.
type ParcelLink struct {
	ParcelID    kernel.UUID
	Sequence    int
	Status      LinkStatus
	CompletedAt *time.Time
}

// DeliveryMission is the aggregate root for a driver assignment that
// delivers depot-held parcels.
//
// Invariants:
//   - A parcel is linked to at most one delivery mission that is not
//     terminal; the mission builder re-validates this inside the creation
//     transaction.
//   - Each link resolves exactly once; the mission derives Completed when
//     the last pending link resolves.
type DeliveryMission struct {
	id           kernel.UUID
	driverID     kernel.UUID
	warehouseID  kernel.UUID
	deliveryDate time.Time
	status       DeliveryStatus
	createdBy    kernel.UUID
	notes        string
	links        []ParcelLink

	isConstructed bool
}

// NewDeliveryMission creates a mission in Scheduled status with one pending
// link per parcel, sequenced in the given order.
func NewDeliveryMission(
	id kernel.UUID,
	driverID kernel.UUID,
	warehouseID kernel.UUID,
	deliveryDate time.Time,
	createdBy kernel.UUID,
	notes string,
	parcelIDs []kernel.UUID,
) (*DeliveryMission, error) {
	m := &DeliveryMission{
		deliveryDate:  deliveryDate,
		status:        DeliveryScheduled,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		m.setID(id),
		m.setDriverID(driverID),
		m.setWarehouseID(warehouseID),
		m.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	if len(parcelIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("parcelIds")
	}
	links := make([]ParcelLink, 0, len(parcelIDs))
	for i, pid := range parcelIDs {
		if err := pid.Validate(); err != nil {
			return nil, err
		}
		links = append(links, ParcelLink{ParcelID: pid, Sequence: i + 1, Status: LinkPending})
	}
	m.links = links

	return m, nil
}

// RestoreDeliveryMission reconstructs a mission from persistence.
// Used only by the repository layer.
func RestoreDeliveryMission(
	id kernel.UUID,
	driverID kernel.UUID,
	warehouseID kernel.UUID,
	deliveryDate time.Time,
	status DeliveryStatus,
	createdBy kernel.UUID,
	notes string,
	links []ParcelLink,
) (*DeliveryMission, error) {
	m := &DeliveryMission{
		deliveryDate:  deliveryDate,
		notes:         notes,
		isConstructed: true,
	}

	if err := errors.Join(
		m.setID(id),
		m.setDriverID(driverID),
		m.setWarehouseID(warehouseID),
		m.setStatus(status),
		m.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	if len(links) == 0 {
		return nil, errs.NewValueIsRequiredError("links")
	}
	for _, link := range links {
		if err := link.ParcelID.Validate(); err != nil {
			return nil, err
		}
		if err := link.Status.Validate(); err != nil {
			return nil, err
		}
	}
	m.links = append([]ParcelLink(nil), links...)

	return m, nil
}

// Validate ensures the mission was created through a constructor.
func (m *DeliveryMission) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrDeliveryMissionIsNotConstructed
	}
	return nil
}

// ID returns the mission's unique identifier.
func (m *DeliveryMission) ID() kernel.UUID {
	return m.id
}

// DriverID returns the assigned driver.
func (m *DeliveryMission) DriverID() kernel.UUID {
	return m.driverID
}

// WarehouseID returns the depot the mission departs from.
func (m *DeliveryMission) WarehouseID() kernel.UUID {
	return m.warehouseID
}

// DeliveryDate returns the scheduled delivery date.
func (m *DeliveryMission) DeliveryDate() time.Time {
	return m.deliveryDate
}

// Status returns the mission's derived status.
func (m *DeliveryMission) Status() DeliveryStatus {
	return m.status
}

// CreatedBy returns the dispatcher who built the mission.
func (m *DeliveryMission) CreatedBy() kernel.UUID {
	return m.createdBy
}

// Notes returns the free-text notes attached at creation.
func (m *DeliveryMission) Notes() string {
	return m.notes
}

// Links returns the sequence-ordered parcel links.
func (m *DeliveryMission) Links() []ParcelLink {
	links := make([]ParcelLink, len(m.links))
	copy(links, m.links)
	return links
}

// Link returns the link for the given parcel, or an ObjectNotFoundError when
// the parcel is not a member of this mission.
func (m *DeliveryMission) Link(parcelID kernel.UUID) (ParcelLink, error) {
	for _, link := range m.links {
		if link.ParcelID.IsEqual(parcelID) {
			return link, nil
		}
	}
	return ParcelLink{}, errs.NewObjectNotFoundError("parcel", parcelID.String())
}

// ResolveParcel records the outcome of one parcel's delivery attempt.
// A link that is no longer pending behaves as if the parcel were not in the
// mission: the caller gets an ObjectNotFoundError, never a second mutation.
// When the last pending link resolves the mission derives Completed.
func (m *DeliveryMission) ResolveParcel(parcelID kernel.UUID, outcome parcel.Outcome, resolvedAt time.Time) error {
	if m.status.IsTerminal() {
		return errs.NewConflictError("mission", "delivery mission is already closed", m.id.String())
	}

	idx := -1
	for i, link := range m.links {
		if link.ParcelID.IsEqual(parcelID) {
			idx = i
			break
		}
	}
	if idx < 0 || m.links[idx].Status != LinkPending {
		return errs.NewObjectNotFoundError("parcel", parcelID.String())
	}

	switch outcome {
	case parcel.OutcomeDelivered:
		m.links[idx].Status = LinkCompleted
	case parcel.OutcomeFailed:
		m.links[idx].Status = LinkFailed
	default:
		return errs.NewValueIsInvalidError("outcome")
	}
	m.links[idx].CompletedAt = &resolvedAt

	for _, link := range m.links {
		if link.Status == LinkPending {
			return nil
		}
	}
	m.status = DeliveryCompleted
	return nil
}

// Cancel withdraws a mission that still has pending links.
func (m *DeliveryMission) Cancel() error {
	if m.status.IsTerminal() {
		return errs.NewConflictError("mission", "delivery mission is already closed", m.id.String())
	}
	m.status = DeliveryCancelled
	return nil
}

func (m *DeliveryMission) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *DeliveryMission) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.driverID = id
	return nil
}

func (m *DeliveryMission) setWarehouseID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.warehouseID = id
	return nil
}

func (m *DeliveryMission) setStatus(status DeliveryStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	m.status = status
	return nil
}

func (m *DeliveryMission) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	m.createdBy = id
	return nil
}
