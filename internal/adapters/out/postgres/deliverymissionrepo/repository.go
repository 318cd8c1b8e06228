package deliverymissionrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// missionColumns are the mutable columns of the mission row.
var missionColumns = []string{
	"driver_id", "warehouse_id", "delivery_date", "status", "created_by", "notes",
}

// linkColumns are the mutable columns of a parcel link. Membership and
// sequence are fixed at creation.
var linkColumns = []string{"link_status", "completed_at"}

// GormDeliveryMissionRepository implements DeliveryMissionRepository using
// GORM.
type GormDeliveryMissionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryMissionRepository creates a new GORM delivery mission
// repository.
func NewGormDeliveryMissionRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryMissionRepository {
	return &GormDeliveryMissionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new mission with its parcel links to the database.
func (r *GormDeliveryMissionRepository) Add(ctx context.Context, aggregate *mission.DeliveryMission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, links := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&links).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing mission and its link states to the database.
func (r *GormDeliveryMissionRepository) Update(ctx context.Context, aggregate *mission.DeliveryMission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, links := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DeliveryMissionDTO{}).
		Where("id = ?", dto.ID).
		Select(missionColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("mission", aggregate.ID().String())
	}

	for _, link := range links {
		linkResult := r.db.WithContext(ctx).Model(&MissionParcelDTO{}).
			Where("mission_id = ? AND mission_kind = ? AND parcel_id = ?",
				link.MissionID, link.MissionKind, link.ParcelID).
			Select(linkColumns).
			Updates(&link)
		if linkResult.Error != nil {
			return linkResult.Error
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a mission by ID, links included.
func (r *GormDeliveryMissionRepository) Get(ctx context.Context, id kernel.UUID) (*mission.DeliveryMission, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryMissionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mission", id.String())
		}
		return nil, err
	}

	var links []MissionParcelDTO
	err := r.db.WithContext(ctx).
		Find(&links, "mission_id = ? AND mission_kind = ?", dto.ID, string(tracking.KindDelivery)).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, links)
}

// ActiveMissionParcelIDs returns the subset of the given parcel ids linked
// to a delivery mission that is not terminal, preserving the input order.
func (r *GormDeliveryMissionRepository) ActiveMissionParcelIDs(ctx context.Context, parcelIDs []kernel.UUID) ([]kernel.UUID, error) {
	if len(parcelIDs) == 0 {
		return nil, nil
	}

	raw := make([]any, 0, len(parcelIDs))
	for _, id := range parcelIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var links []MissionParcelDTO
	err := r.db.WithContext(ctx).Model(&MissionParcelDTO{}).
		Joins("JOIN delivery_missions ON delivery_missions.id = mission_parcels.mission_id").
		Where("mission_parcels.mission_kind = ?", string(tracking.KindDelivery)).
		Where("mission_parcels.parcel_id IN ?", raw).
		Where("delivery_missions.status = ?", int(mission.DeliveryScheduled)).
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	claimed := make(map[kernel.UUID]struct{}, len(links))
	for _, link := range links {
		pid, linkErr := kernel.UUIDFromBytes(link.ParcelID[:])
		if linkErr != nil {
			return nil, linkErr
		}
		claimed[pid] = struct{}{}
	}

	result := make([]kernel.UUID, 0, len(claimed))
	for _, id := range parcelIDs {
		if _, ok := claimed[id]; ok {
			result = append(result, id)
		}
	}

	return result, nil
}
