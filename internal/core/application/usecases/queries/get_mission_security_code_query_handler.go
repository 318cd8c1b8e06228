package queries

import (
	"context"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetMissionSecurityCodeQueryHandler reveals a mission completion code to
// authorized staff. The capability check runs before the database is
// touched.
type GetMissionSecurityCodeQueryHandler struct {
	db *gorm.DB
}

func NewGetMissionSecurityCodeQueryHandler(db *gorm.DB) GetMissionSecurityCodeQueryHandler {
	return GetMissionSecurityCodeQueryHandler{db: db}
}

func (h GetMissionSecurityCodeQueryHandler) Handle(
	ctx context.Context,
	query GetMissionSecurityCodeQuery,
) (GetMissionSecurityCodeQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMissionSecurityCodeQueryResponse{}, err
	}
	if err := query.Requester().Require(actor.CapViewSecurityCode, "view mission security code"); err != nil {
		return GetMissionSecurityCodeQueryResponse{}, err
	}

	resp := GetMissionSecurityCodeQueryResponse{}
	var status int
	err := h.db.WithContext(ctx).Raw(`
		SELECT number, security_code, status
		FROM pickup_missions
		WHERE id = ?
	`, query.MissionID().Bytes()).Row().Scan(&resp.MissionNumber, &resp.SecurityCode, &status)
	if err != nil {
		return GetMissionSecurityCodeQueryResponse{},
			errs.NewObjectNotFoundErrorWithCause("missionID", query.MissionID().String(), err)
	}

	resp.Status = mission.PickupStatus(status).String()
	return resp, nil
}
