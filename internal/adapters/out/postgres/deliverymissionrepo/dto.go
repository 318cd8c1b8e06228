// Package deliverymissionrepo provides data transfer objects and mapping
// functions for delivery mission persistence. A mission spans the aggregate
// row and its rows in the shared mission_parcels table (discriminated by
// mission_kind), which carry the per-parcel resolution state.
package deliverymissionrepo

import (
	"sort"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// DeliveryMissionDTO represents the database structure for persisting
// delivery mission aggregates.
type DeliveryMissionDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DriverID     uuid.UUID `gorm:"type:uuid;index"`
	WarehouseID  uuid.UUID `gorm:"type:uuid;index"`
	DeliveryDate time.Time `gorm:"index"`
	Status       int       `gorm:"index"`
	CreatedBy    uuid.UUID `gorm:"type:uuid"`
	Notes        string
}

// TableName specifies the database table name for delivery mission entities.
func (DeliveryMissionDTO) TableName() string {
	return "delivery_missions"
}

// MissionParcelDTO is the delivery-side view of the shared mission_parcels
// table. LinkStatus and CompletedAt record the per-parcel resolution;
// pickup rows leave them at their zero values.
type MissionParcelDTO struct {
	MissionID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	MissionKind string    `gorm:"primaryKey"`
	ParcelID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Sequence    int
	LinkStatus  int
	CompletedAt *time.Time
}

// TableName specifies the database table name for mission parcel links.
func (MissionParcelDTO) TableName() string {
	return "mission_parcels"
}

// fromDomain converts a delivery mission domain aggregate to its database
// rows.
func fromDomain(m *mission.DeliveryMission) (DeliveryMissionDTO, []MissionParcelDTO) {
	dto := DeliveryMissionDTO{
		ID:           m.ID().Bytes(),
		DriverID:     m.DriverID().Bytes(),
		WarehouseID:  m.WarehouseID().Bytes(),
		DeliveryDate: m.DeliveryDate(),
		Status:       int(m.Status()),
		CreatedBy:    m.CreatedBy().Bytes(),
		Notes:        m.Notes(),
	}

	links := m.Links()
	linkDTOs := make([]MissionParcelDTO, 0, len(links))
	for _, link := range links {
		linkDTOs = append(linkDTOs, MissionParcelDTO{
			MissionID:   dto.ID,
			MissionKind: string(tracking.KindDelivery),
			ParcelID:    link.ParcelID.Bytes(),
			Sequence:    link.Sequence,
			LinkStatus:  int(link.Status),
			CompletedAt: link.CompletedAt,
		})
	}

	return dto, linkDTOs
}

// toDomain converts database rows to a delivery mission domain aggregate.
// Links are ordered by sequence before reconstruction.
func toDomain(dto DeliveryMissionDTO, linkDTOs []MissionParcelDTO) (*mission.DeliveryMission, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	warehouseID, err := kernel.UUIDFromBytes(dto.WarehouseID[:])
	if err != nil {
		return nil, err
	}

	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	sort.Slice(linkDTOs, func(i, j int) bool {
		return linkDTOs[i].Sequence < linkDTOs[j].Sequence
	})

	links := make([]mission.ParcelLink, 0, len(linkDTOs))
	for _, linkDTO := range linkDTOs {
		pid, linkErr := kernel.UUIDFromBytes(linkDTO.ParcelID[:])
		if linkErr != nil {
			return nil, linkErr
		}
		links = append(links, mission.ParcelLink{
			ParcelID:    pid,
			Sequence:    linkDTO.Sequence,
			Status:      mission.LinkStatus(linkDTO.LinkStatus),
			CompletedAt: linkDTO.CompletedAt,
		})
	}

	return mission.RestoreDeliveryMission(
		id,
		driverID,
		warehouseID,
		dto.DeliveryDate,
		mission.DeliveryStatus(dto.Status),
		createdBy,
		dto.Notes,
		links,
	)
}
