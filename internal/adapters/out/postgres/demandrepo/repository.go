package demandrepo

import (
	"context"
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/demand"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// demandColumns are the mutable columns written on every update. Membership
// links are immutable and never rewritten.
var demandColumns = []string{
	"shipper_id", "agency_id", "status", "reviewer_id", "reviewed_at", "notes",
}

// GormDemandRepository implements DemandRepository using GORM.
type GormDemandRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDemandRepository creates a new GORM demand repository.
func NewGormDemandRepository(db *gorm.DB, tracker aggregateTracker) *GormDemandRepository {
	return &GormDemandRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new demand and its membership links to the database.
func (r *GormDemandRepository) Add(ctx context.Context, aggregate *demand.Demand) error {
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

// Update saves an existing demand to the database.
func (r *GormDemandRepository) Update(ctx context.Context, aggregate *demand.Demand) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _ := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&DemandDTO{}).
		Where("id = ?", dto.ID).
		Select(demandColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("demand", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a demand by ID, members included.
func (r *GormDemandRepository) Get(ctx context.Context, id kernel.UUID) (*demand.Demand, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DemandDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("demand", id.String())
		}
		return nil, err
	}

	var links []DemandParcelDTO
	if err := r.db.WithContext(ctx).Find(&links, "demand_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, links)
}

// GetBatch retrieves all demands for the given ids, preserving the input
// order. Missing ids produce an ObjectNotFoundError naming them.
func (r *GormDemandRepository) GetBatch(ctx context.Context, ids []kernel.UUID) ([]*demand.Demand, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("ids")
	}

	raw := make([]any, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []DemandDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	var allLinks []DemandParcelDTO
	if err := r.db.WithContext(ctx).Find(&allLinks, "demand_id IN ?", raw).Error; err != nil {
		return nil, err
	}

	linksByDemand := make(map[kernel.UUID][]DemandParcelDTO, len(dtos))
	for _, link := range allLinks {
		did, err := kernel.UUIDFromBytes(link.DemandID[:])
		if err != nil {
			return nil, err
		}
		linksByDemand[did] = append(linksByDemand[did], link)
	}

	byID := make(map[kernel.UUID]DemandDTO, len(dtos))
	for _, dto := range dtos {
		did, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		byID[did] = dto
	}

	demands := make([]*demand.Demand, 0, len(ids))
	missing := make([]string, 0)
	for _, id := range ids {
		dto, ok := byID[id]
		if !ok {
			missing = append(missing, id.String())
			continue
		}

		d, err := toDomain(dto, linksByDemand[id])
		if err != nil {
			return nil, err
		}
		demands = append(demands, d)
	}

	if len(missing) > 0 {
		return nil, errs.NewObjectNotFoundError("demands", strings.Join(missing, ", "))
	}

	return demands, nil
}

// Delete removes a demand and its membership links. The member parcels
// themselves are never touched.
func (r *GormDemandRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Delete(&DemandParcelDTO{}, "demand_id = ?", id.Bytes()).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&DemandDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("demand", id.String())
	}

	return nil
}

// OpenDemandParcelIDs returns the subset of the given parcel ids that are
// already claimed by an open demand, preserving the input order.
func (r *GormDemandRepository) OpenDemandParcelIDs(ctx context.Context, parcelIDs []kernel.UUID) ([]kernel.UUID, error) {
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

	var links []DemandParcelDTO
	err := r.db.WithContext(ctx).Model(&DemandParcelDTO{}).
		Joins("JOIN demands ON demands.id = demand_parcels.demand_id").
		Where("demand_parcels.parcel_id IN ?", raw).
		Where("demands.status IN ?", []int{int(demand.Pending), int(demand.Accepted)}).
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
