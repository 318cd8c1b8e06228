package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetMissionSecurityCodeQueryIsNotConstructed = errors.New(
	"GetMissionSecurityCodeQuery must be created via NewGetMissionSecurityCodeQuery constructor",
)

// GetMissionSecurityCodeQuery reveals the completion code of a pickup
// mission. The code gates the depot check-in, so reading it requires the
// CapViewSecurityCode capability; drivers learn it out of band.
type GetMissionSecurityCodeQuery struct {
	missionID kernel.UUID
	requester actor.Actor

	guard guard.ConstructorGuard
}

func NewGetMissionSecurityCodeQuery(
	missionID kernel.UUID, requester actor.Actor,
) (GetMissionSecurityCodeQuery, error) {
	if err := errors.Join(missionID.Validate(), requester.Validate()); err != nil {
		return GetMissionSecurityCodeQuery{}, err
	}
	return GetMissionSecurityCodeQuery{
		missionID: missionID,
		requester: requester,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetMissionSecurityCodeQuery) Validate() error {
	return q.guard.Validate(ErrGetMissionSecurityCodeQueryIsNotConstructed)
}

func (q GetMissionSecurityCodeQuery) MissionID() kernel.UUID {
	return q.missionID
}

func (q GetMissionSecurityCodeQuery) Requester() actor.Actor {
	return q.requester
}

// GetMissionSecurityCodeQueryResponse carries the revealed code.
type GetMissionSecurityCodeQueryResponse struct {
	MissionNumber string
	SecurityCode  string
	Status        string
}
