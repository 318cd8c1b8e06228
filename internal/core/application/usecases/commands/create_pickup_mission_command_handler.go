package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/demand"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

var ErrInvalidUoWFactory = errors.New("invalid unit of work factory")

// CreatePickupMissionCommandHandler plans a pickup mission over accepted
// demands. Everything happens in one transaction: demand availability is
// re-validated inside it, the mission number and security code are
// reserved, the demands are consumed and every member parcel moves to the
// pickup queue with a history record.
type CreatePickupMissionCommandHandler struct {
	uowFactory    UoWFactory
	codeGenerator services.SecurityCodeGenerator
}

func NewCreatePickupMissionCommandHandler(
	uowFactory UoWFactory,
	codeGenerator services.SecurityCodeGenerator,
) (CreatePickupMissionCommandHandler, error) {
	if uowFactory == nil {
		return CreatePickupMissionCommandHandler{}, ErrInvalidUoWFactory
	}
	return CreatePickupMissionCommandHandler{
		uowFactory:    uowFactory,
		codeGenerator: codeGenerator,
	}, nil
}

// Handle creates the mission and returns the persisted aggregate so the
// caller can surface the generated number.
func (h CreatePickupMissionCommandHandler) Handle(
	ctx context.Context, cmd CreatePickupMissionCommand,
) (*mission.PickupMission, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := cmd.Requester().Require(actor.CapCreateMission, "create pickup mission"); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	eligible, err := uow.StaffDirectory().DriverIsEligible(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, errs.NewConflictError("driverID", "driver is not eligible", cmd.DriverID().String())
	}

	demands, err := uow.DemandRepository().GetBatch(ctx, cmd.DemandIDs())
	if err != nil {
		return nil, err
	}

	var notAccepted []string
	for _, d := range demands {
		if d.Status() != demand.Accepted {
			notAccepted = append(notAccepted, fmt.Sprintf("%s (%s)", d.ID(), d.Status()))
		}
	}
	if len(notAccepted) > 0 {
		return nil, errs.NewConflictError("demandIDs", "demands are not accepted", notAccepted...)
	}

	active, err := uow.PickupMissionRepository().ActiveMissionNumbersByDemand(ctx, cmd.DemandIDs())
	if err != nil {
		return nil, err
	}
	if len(active) > 0 {
		var busy []string
		for _, d := range demands {
			if number, ok := active[d.ID()]; ok {
				busy = append(busy, fmt.Sprintf("%s (mission %s)", d.ID(), number))
			}
		}
		return nil, errs.NewConflictError("demandIDs", "demands already assigned to an active mission", busy...)
	}

	code, err := h.codeGenerator.Generate(ctx, uow.PickupMissionRepository().SecurityCodeExists)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sequence, err := uow.PickupMissionRepository().NextMissionSequence(ctx, now.Year())
	if err != nil {
		return nil, err
	}
	number := mission.FormatMissionNumber(now.Year(), sequence)

	var parcelIDs []kernel.UUID
	for _, d := range demands {
		parcelIDs = append(parcelIDs, d.ParcelIDs()...)
	}

	m, err := mission.NewPickupMission(
		kernel.NewUUID(),
		number,
		cmd.DriverID(),
		code,
		cmd.ScheduledAt(),
		cmd.Requester().ID(),
		cmd.Notes(),
		cmd.DemandIDs(),
		parcelIDs,
	)
	if err != nil {
		return nil, err
	}

	if err := uow.PickupMissionRepository().Add(ctx, m); err != nil {
		return nil, err
	}

	for _, d := range demands {
		if err := d.MarkConsumed(); err != nil {
			return nil, err
		}
		if err := uow.DemandRepository().Update(ctx, d); err != nil {
			return nil, err
		}
	}

	parcels, err := uow.ParcelRepository().GetBatch(ctx, parcelIDs)
	if err != nil {
		return nil, err
	}
	ref := tracking.NewPickupRef(m.ID())
	note := fmt.Sprintf("assigned to pickup mission %s", number)
	for _, p := range parcels {
		err := transitionParcel(ctx,
			uow.ParcelRepository(), uow.TrackingHistoryRepository(),
			p, parcel.ToPickup, ref, cmd.Requester().ID(), note, now)
		if err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return m, nil
}
