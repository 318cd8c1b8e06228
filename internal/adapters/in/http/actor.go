package http

import (
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	headerActorID   = "X-Actor-Id"
	headerActorRole = "X-Actor-Role"
)

// actorFromHeaders reconstructs the authenticated actor that the gateway
// forwards in headers. Authentication itself happens upstream.
func actorFromHeaders(ctx echo.Context) (actor.Actor, error) {
	rawID := ctx.Request().Header.Get(headerActorID)
	if rawID == "" {
		return actor.Actor{}, errs.NewValueIsRequiredError(headerActorID)
	}

	id, err := kernel.UUIDFromString(rawID)
	if err != nil {
		return actor.Actor{}, errs.NewValueIsInvalidErrorWithCause(headerActorID, err)
	}

	role, err := actor.RoleFromString(ctx.Request().Header.Get(headerActorRole))
	if err != nil {
		return actor.Actor{}, errs.NewValueIsInvalidErrorWithCause(headerActorRole, err)
	}

	return actor.NewActor(id, role)
}
