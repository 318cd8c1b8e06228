package pickupmissionrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// missionColumns are the mutable columns written on every update. Links are
// immutable and never rewritten.
var missionColumns = []string{
	"number", "driver_id", "status", "security_code",
	"scheduled_at", "created_by", "notes",
}

// GormPickupMissionRepository implements PickupMissionRepository using GORM.
type GormPickupMissionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPickupMissionRepository creates a new GORM pickup mission
// repository.
func NewGormPickupMissionRepository(db *gorm.DB, tracker aggregateTracker) *GormPickupMissionRepository {
	return &GormPickupMissionRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new mission with its demand and parcel links to the database.
func (r *GormPickupMissionRepository) Add(ctx context.Context, aggregate *mission.PickupMission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, demandLinks, parcelLinks := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&demandLinks).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&parcelLinks).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing mission to the database.
func (r *GormPickupMissionRepository) Update(ctx context.Context, aggregate *mission.PickupMission) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, _, _ := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PickupMissionDTO{}).
		Where("id = ?", dto.ID).
		Select(missionColumns).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("mission", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a mission by ID, links included.
func (r *GormPickupMissionRepository) Get(ctx context.Context, id kernel.UUID) (*mission.PickupMission, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PickupMissionDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mission", id.String())
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// GetByNumber retrieves a mission by its human-readable number.
func (r *GormPickupMissionRepository) GetByNumber(ctx context.Context, number string) (*mission.PickupMission, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number")
	}

	var dto PickupMissionDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("mission", number)
		}
		return nil, err
	}

	return r.load(ctx, dto)
}

// ActiveMissionNumbersByDemand returns, for each of the given demand ids
// linked to an active mission, the number of that mission.
func (r *GormPickupMissionRepository) ActiveMissionNumbersByDemand(ctx context.Context, demandIDs []kernel.UUID) (map[kernel.UUID]string, error) {
	if len(demandIDs) == 0 {
		return map[kernel.UUID]string{}, nil
	}

	raw := make([]any, 0, len(demandIDs))
	for _, id := range demandIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	activeStatuses := []int{
		int(mission.PickupPending),
		int(mission.PickupAccepted),
		int(mission.PickupCollected),
	}

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT md.demand_id, pm.number
		FROM mission_demands md
		JOIN pickup_missions pm ON pm.id = md.mission_id
		WHERE md.demand_id IN ? AND pm.status IN ?`,
		raw, activeStatuses).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[kernel.UUID]string)
	for rows.Next() {
		var demandID string
		var number string
		if err := rows.Scan(&demandID, &number); err != nil {
			return nil, err
		}

		did, parseErr := kernel.UUIDFromString(demandID)
		if parseErr != nil {
			return nil, parseErr
		}
		result[did] = number
	}

	return result, rows.Err()
}

// SecurityCodeExists checks the completion-code column for a candidate.
func (r *GormPickupMissionRepository) SecurityCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&PickupMissionDTO{}).
		Where("upper(security_code) = upper(?)", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// NextMissionSequence returns the next per-year sequence for building a
// mission number. Sequences restart at 1 each year.
func (r *GormPickupMissionRepository) NextMissionSequence(ctx context.Context, year int) (int, error) {
	prefix := fmt.Sprintf("PM-%04d-", year)

	var last int
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(CAST(SUBSTRING(number FROM ?) AS integer)), 0)
		FROM pickup_missions
		WHERE number LIKE ?`,
		len(prefix)+1, prefix+"%").Row().Scan(&last)
	if err != nil {
		return 0, err
	}

	return last + 1, nil
}

// GetAllOverdue retrieves missions still Pending whose scheduled time lies
// before the cutoff.
func (r *GormPickupMissionRepository) GetAllOverdue(ctx context.Context, cutoff time.Time) ([]*mission.PickupMission, error) {
	var dtos []PickupMissionDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND scheduled_at < ?", int(mission.PickupPending), cutoff).Error
	if err != nil {
		return nil, err
	}

	missions := make([]*mission.PickupMission, 0, len(dtos))
	for _, dto := range dtos {
		m, loadErr := r.load(ctx, dto)
		if loadErr != nil {
			return nil, loadErr
		}
		missions = append(missions, m)
	}

	return missions, nil
}

// load fetches a mission's links and reconstructs the aggregate.
func (r *GormPickupMissionRepository) load(ctx context.Context, dto PickupMissionDTO) (*mission.PickupMission, error) {
	var demandLinks []MissionDemandDTO
	if err := r.db.WithContext(ctx).Find(&demandLinks, "mission_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	var parcelLinks []MissionParcelDTO
	err := r.db.WithContext(ctx).
		Find(&parcelLinks, "mission_id = ? AND mission_kind = ?", dto.ID, string(tracking.KindPickup)).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, demandLinks, parcelLinks)
}
