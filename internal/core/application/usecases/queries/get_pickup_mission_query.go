package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetPickupMissionQueryIsNotConstructed = errors.New(
	"GetPickupMissionQuery must be created via NewGetPickupMissionQuery constructor",
)

// GetPickupMissionQuery retrieves the dispatcher view of one pickup
// mission. The security code is deliberately absent from this projection;
// it has its own capability-gated query.
type GetPickupMissionQuery struct {
	missionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPickupMissionQuery(missionID kernel.UUID) (GetPickupMissionQuery, error) {
	if err := missionID.Validate(); err != nil {
		return GetPickupMissionQuery{}, err
	}
	return GetPickupMissionQuery{
		missionID: missionID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetPickupMissionQuery) Validate() error {
	return q.guard.Validate(ErrGetPickupMissionQueryIsNotConstructed)
}

func (q GetPickupMissionQuery) MissionID() kernel.UUID {
	return q.missionID
}

// GetPickupMissionQueryResponse is the hydrated mission projection.
type GetPickupMissionQueryResponse struct {
	ID          kernel.UUID
	Number      string
	DriverID    kernel.UUID
	Status      string
	ScheduledAt time.Time
	Notes       string
	DemandCount int
	ParcelCount int
}
