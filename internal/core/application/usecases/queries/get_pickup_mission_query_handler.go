package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetPickupMissionQueryHandler reads the mission row with its link counts
// in one round trip.
type GetPickupMissionQueryHandler struct {
	db *gorm.DB
}

func NewGetPickupMissionQueryHandler(db *gorm.DB) GetPickupMissionQueryHandler {
	return GetPickupMissionQueryHandler{db: db}
}

func (h GetPickupMissionQueryHandler) Handle(
	ctx context.Context,
	query GetPickupMissionQuery,
) (GetPickupMissionQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPickupMissionQueryResponse{}, err
	}

	resp := GetPickupMissionQueryResponse{}
	var status int
	var id, driverID uuid.UUID

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			pm.id,
			pm.number,
			pm.driver_id,
			pm.status,
			pm.scheduled_at,
			pm.notes,
			(SELECT COUNT(*) FROM mission_demands md WHERE md.mission_id = pm.id) AS demand_count,
			(SELECT COUNT(*) FROM mission_parcels mp
				WHERE mp.mission_id = pm.id AND mp.mission_kind = 'pickup') AS parcel_count
		FROM pickup_missions pm
		WHERE pm.id = ?
	`, query.MissionID().Bytes()).Row().Scan(
		&id, &resp.Number, &driverID, &status,
		&resp.ScheduledAt, &resp.Notes, &resp.DemandCount, &resp.ParcelCount,
	)
	if err != nil {
		return GetPickupMissionQueryResponse{},
			errs.NewObjectNotFoundErrorWithCause("missionID", query.MissionID().String(), err)
	}

	missionID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetPickupMissionQueryResponse{}, err
	}
	driver, err := kernel.UUIDFromBytes(driverID[:])
	if err != nil {
		return GetPickupMissionQueryResponse{}, err
	}

	resp.ID = missionID
	resp.DriverID = driver
	resp.Status = mission.PickupStatus(status).String()
	return resp, nil
}
