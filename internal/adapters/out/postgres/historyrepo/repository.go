// Package historyrepo persists the append-only parcel transition log.
// Events are written exactly once per transition and never updated or
// deleted.
package historyrepo

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventDTO represents the database structure for persisting tracking
// events. MissionID is null when the transition was not caused by a
// mission (intake, operator override).
type EventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus  int
	ToStatus    int
	MissionID   *uuid.UUID `gorm:"type:uuid;index"`
	MissionKind string
	ActorID     uuid.UUID `gorm:"type:uuid"`
	Note        string
	OccurredAt  time.Time `gorm:"index"`
}

// TableName specifies the database table name for tracking events.
func (EventDTO) TableName() string {
	return "parcel_tracking_history"
}

// fromDomain converts a tracking event to its database representation.
func fromDomain(e *tracking.Event) EventDTO {
	var missionID *uuid.UUID
	if ref := e.Mission(); !ref.IsZero() {
		raw := ref.ID.Bytes()
		missionID = &raw
	}

	return EventDTO{
		ID:          e.ID().Bytes(),
		ParcelID:    e.ParcelID().Bytes(),
		FromStatus:  int(e.FromStatus()),
		ToStatus:    int(e.ToStatus()),
		MissionID:   missionID,
		MissionKind: string(e.Mission().Kind),
		ActorID:     e.ActorID().Bytes(),
		Note:        e.Note(),
		OccurredAt:  e.OccurredAt(),
	}
}

// toDomain converts a database DTO to a tracking event.
func toDomain(dto EventDTO) (*tracking.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	parcelID, err := kernel.UUIDFromBytes(dto.ParcelID[:])
	if err != nil {
		return nil, err
	}

	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	var ref tracking.MissionRef
	if dto.MissionID != nil {
		missionID, missionErr := kernel.UUIDFromBytes((*dto.MissionID)[:])
		if missionErr != nil {
			return nil, missionErr
		}
		ref = tracking.MissionRef{ID: missionID, Kind: tracking.MissionKind(dto.MissionKind)}
	}

	return tracking.RestoreEvent(
		id,
		parcelID,
		parcel.Status(dto.FromStatus),
		parcel.Status(dto.ToStatus),
		ref,
		actorID,
		dto.Note,
		dto.OccurredAt,
	)
}

// GormTrackingHistoryRepository implements TrackingHistoryRepository using
// GORM.
type GormTrackingHistoryRepository struct {
	db *gorm.DB
}

// NewGormTrackingHistoryRepository creates a new GORM history repository.
func NewGormTrackingHistoryRepository(db *gorm.DB) *GormTrackingHistoryRepository {
	return &GormTrackingHistoryRepository{db: db}
}

// Append writes one history event.
func (r *GormTrackingHistoryRepository) Append(ctx context.Context, event *tracking.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByParcel retrieves a parcel's events oldest first. Ties on the
// timestamp are broken by id so the order is stable.
func (r *GormTrackingHistoryRepository) ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]*tracking.Event, error) {
	if err := parcelID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Order("occurred_at, id").
		Find(&dtos, "parcel_id = ?", parcelID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	events := make([]*tracking.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		events = append(events, e)
	}

	return events, nil
}
