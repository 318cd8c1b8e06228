// Package demandrepo provides data transfer objects and mapping functions
// for demand persistence. A demand spans two tables: the aggregate row and
// its ordered parcel-membership links.
package demandrepo

import (
	"sort"
	"time"

	"dispatch/internal/core/domain/model/demand"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DemandDTO represents the database structure for persisting demand
// aggregates.
type DemandDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipperID  uuid.UUID `gorm:"type:uuid;index"`
	AgencyID   uuid.UUID `gorm:"type:uuid;index"`
	Status     int       `gorm:"index"`
	ReviewerID *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt *time.Time
	Notes      string
}

// TableName specifies the database table name for demand entities.
func (DemandDTO) TableName() string {
	return "demands"
}

// DemandParcelDTO is one ordered parcel membership within a demand.
// Membership is immutable after creation.
type DemandParcelDTO struct {
	DemandID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Sequence int
}

// TableName specifies the database table name for demand memberships.
func (DemandParcelDTO) TableName() string {
	return "demand_parcels"
}

// fromDomain converts a demand domain aggregate to its database rows.
func fromDomain(d *demand.Demand) (DemandDTO, []DemandParcelDTO) {
	var reviewerID *uuid.UUID
	if id := d.ReviewerID(); id != nil {
		raw := id.Bytes()
		reviewerID = &raw
	}

	dto := DemandDTO{
		ID:         d.ID().Bytes(),
		ShipperID:  d.ShipperID().Bytes(),
		AgencyID:   d.AgencyID().Bytes(),
		Status:     int(d.Status()),
		ReviewerID: reviewerID,
		ReviewedAt: d.ReviewedAt(),
		Notes:      d.Notes(),
	}

	parcelIDs := d.ParcelIDs()
	links := make([]DemandParcelDTO, 0, len(parcelIDs))
	for i, pid := range parcelIDs {
		links = append(links, DemandParcelDTO{
			DemandID: dto.ID,
			ParcelID: pid.Bytes(),
			Sequence: i + 1,
		})
	}

	return dto, links
}

// toDomain converts database rows to a demand domain aggregate. Links are
// ordered by sequence before reconstruction.
func toDomain(dto DemandDTO, links []DemandParcelDTO) (*demand.Demand, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipperID, err := kernel.UUIDFromBytes(dto.ShipperID[:])
	if err != nil {
		return nil, err
	}

	agencyID, err := kernel.UUIDFromBytes(dto.AgencyID[:])
	if err != nil {
		return nil, err
	}

	var reviewerID *kernel.UUID
	if dto.ReviewerID != nil {
		rID, reviewerErr := kernel.UUIDFromBytes((*dto.ReviewerID)[:])
		if reviewerErr != nil {
			return nil, reviewerErr
		}

		reviewerID = &rID
	}

	sort.Slice(links, func(i, j int) bool {
		return links[i].Sequence < links[j].Sequence
	})

	parcelIDs := make([]kernel.UUID, 0, len(links))
	for _, link := range links {
		pid, parcelErr := kernel.UUIDFromBytes(link.ParcelID[:])
		if parcelErr != nil {
			return nil, parcelErr
		}
		parcelIDs = append(parcelIDs, pid)
	}

	return demand.RestoreDemand(
		id,
		shipperID,
		agencyID,
		demand.Status(dto.Status),
		reviewerID,
		dto.ReviewedAt,
		dto.Notes,
		parcelIDs,
	)
}
