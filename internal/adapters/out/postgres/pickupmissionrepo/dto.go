// Package pickupmissionrepo provides data transfer objects and mapping
// functions for pickup mission persistence. A mission spans three tables:
// the aggregate row, its demand links, and its rows in the shared
// mission_parcels table (discriminated by mission_kind).
package pickupmissionrepo

import (
	"sort"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// PickupMissionDTO represents the database structure for persisting pickup
// mission aggregates. The security code column carries a unique index, so a
// concurrent duplicate fails at commit even if the pre-insert lookup missed
// it.
type PickupMissionDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"uniqueIndex"`
	DriverID     uuid.UUID `gorm:"type:uuid;index"`
	Status       int       `gorm:"index"`
	SecurityCode string    `gorm:"uniqueIndex"`
	ScheduledAt  time.Time `gorm:"index"`
	CreatedBy    uuid.UUID `gorm:"type:uuid"`
	Notes        string
}

// TableName specifies the database table name for pickup mission entities.
func (PickupMissionDTO) TableName() string {
	return "pickup_missions"
}

// MissionDemandDTO is one ordered demand membership within a pickup mission.
type MissionDemandDTO struct {
	MissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	DemandID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Sequence  int
}

// TableName specifies the database table name for mission demand links.
func (MissionDemandDTO) TableName() string {
	return "mission_demands"
}

// MissionParcelDTO is the pickup-side view of the shared mission_parcels
// table. Pickup rows carry no link resolution state; those columns belong
// to delivery missions.
type MissionParcelDTO struct {
	MissionID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	MissionKind string    `gorm:"primaryKey"`
	ParcelID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Sequence    int
}

// TableName specifies the database table name for mission parcel links.
func (MissionParcelDTO) TableName() string {
	return "mission_parcels"
}

// fromDomain converts a pickup mission domain aggregate to its database
// rows.
func fromDomain(m *mission.PickupMission) (PickupMissionDTO, []MissionDemandDTO, []MissionParcelDTO) {
	dto := PickupMissionDTO{
		ID:           m.ID().Bytes(),
		Number:       m.Number(),
		DriverID:     m.DriverID().Bytes(),
		Status:       int(m.Status()),
		SecurityCode: m.SecurityCode(),
		ScheduledAt:  m.ScheduledAt(),
		CreatedBy:    m.CreatedBy().Bytes(),
		Notes:        m.Notes(),
	}

	demandIDs := m.DemandIDs()
	demandLinks := make([]MissionDemandDTO, 0, len(demandIDs))
	for i, did := range demandIDs {
		demandLinks = append(demandLinks, MissionDemandDTO{
			MissionID: dto.ID,
			DemandID:  did.Bytes(),
			Sequence:  i + 1,
		})
	}

	parcelIDs := m.ParcelIDs()
	parcelLinks := make([]MissionParcelDTO, 0, len(parcelIDs))
	for i, pid := range parcelIDs {
		parcelLinks = append(parcelLinks, MissionParcelDTO{
			MissionID:   dto.ID,
			MissionKind: string(tracking.KindPickup),
			ParcelID:    pid.Bytes(),
			Sequence:    i + 1,
		})
	}

	return dto, demandLinks, parcelLinks
}

// toDomain converts database rows to a pickup mission domain aggregate.
// Links are ordered by sequence before reconstruction.
func toDomain(dto PickupMissionDTO, demandLinks []MissionDemandDTO, parcelLinks []MissionParcelDTO) (*mission.PickupMission, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	sort.Slice(demandLinks, func(i, j int) bool {
		return demandLinks[i].Sequence < demandLinks[j].Sequence
	})
	demandIDs := make([]kernel.UUID, 0, len(demandLinks))
	for _, link := range demandLinks {
		did, linkErr := kernel.UUIDFromBytes(link.DemandID[:])
		if linkErr != nil {
			return nil, linkErr
		}
		demandIDs = append(demandIDs, did)
	}

	sort.Slice(parcelLinks, func(i, j int) bool {
		return parcelLinks[i].Sequence < parcelLinks[j].Sequence
	})
	parcelIDs := make([]kernel.UUID, 0, len(parcelLinks))
	for _, link := range parcelLinks {
		pid, linkErr := kernel.UUIDFromBytes(link.ParcelID[:])
		if linkErr != nil {
			return nil, linkErr
		}
		parcelIDs = append(parcelIDs, pid)
	}

	return mission.RestorePickupMission(
		id,
		dto.Number,
		driverID,
		mission.PickupStatus(dto.Status),
		dto.SecurityCode,
		dto.ScheduledAt,
		createdBy,
		dto.Notes,
		demandIDs,
		parcelIDs,
	)
}
