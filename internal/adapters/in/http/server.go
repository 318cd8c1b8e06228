// Package http exposes the dispatch use cases over a REST surface built on
// echo. Handlers translate wire contracts into commands and queries and map
// the domain error taxonomy onto HTTP statuses.
package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/demand"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	registerParcelHandler        commands.RegisterParcelCommandHandler
	createDemandHandler          commands.CreateDemandCommandHandler
	reviewDemandHandler          commands.ReviewDemandCommandHandler
	deleteDemandHandler          commands.DeleteDemandCommandHandler
	createPickupMissionHandler   commands.CreatePickupMissionCommandHandler
	updatePickupStatusHandler    commands.UpdatePickupMissionStatusCommandHandler
	createDeliveryMissionHandler commands.CreateDeliveryMissionCommandHandler
	resolveDeliveryHandler       commands.ResolveDeliveryCommandHandler
	overrideParcelStatusHandler  commands.OverrideParcelStatusCommandHandler

	// Query handlers
	trackParcelHandler      queries.TrackParcelQueryHandler
	getPickupMissionHandler queries.GetPickupMissionQueryHandler
	getSecurityCodeHandler  queries.GetMissionSecurityCodeQueryHandler
	getDepotParcelsHandler  queries.GetDepotParcelsQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	registerParcelHandler commands.RegisterParcelCommandHandler,
	createDemandHandler commands.CreateDemandCommandHandler,
	reviewDemandHandler commands.ReviewDemandCommandHandler,
	deleteDemandHandler commands.DeleteDemandCommandHandler,
	createPickupMissionHandler commands.CreatePickupMissionCommandHandler,
	updatePickupStatusHandler commands.UpdatePickupMissionStatusCommandHandler,
	createDeliveryMissionHandler commands.CreateDeliveryMissionCommandHandler,
	resolveDeliveryHandler commands.ResolveDeliveryCommandHandler,
	overrideParcelStatusHandler commands.OverrideParcelStatusCommandHandler,
	trackParcelHandler queries.TrackParcelQueryHandler,
	getPickupMissionHandler queries.GetPickupMissionQueryHandler,
	getSecurityCodeHandler queries.GetMissionSecurityCodeQueryHandler,
	getDepotParcelsHandler queries.GetDepotParcelsQueryHandler,
) *Server {
	return &Server{
		registerParcelHandler:        registerParcelHandler,
		createDemandHandler:          createDemandHandler,
		reviewDemandHandler:          reviewDemandHandler,
		deleteDemandHandler:          deleteDemandHandler,
		createPickupMissionHandler:   createPickupMissionHandler,
		updatePickupStatusHandler:    updatePickupStatusHandler,
		createDeliveryMissionHandler: createDeliveryMissionHandler,
		resolveDeliveryHandler:       resolveDeliveryHandler,
		overrideParcelStatusHandler:  overrideParcelStatusHandler,
		trackParcelHandler:           trackParcelHandler,
		getPickupMissionHandler:      getPickupMissionHandler,
		getSecurityCodeHandler:       getSecurityCodeHandler,
		getDepotParcelsHandler:       getDepotParcelsHandler,
	}
}

// RegisterRoutes wires every API route onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/parcels", s.RegisterParcel)
	e.PUT("/parcels/:id/status", s.OverrideParcelStatus)
	e.GET("/parcels/:code/tracking", s.TrackParcel)

	e.POST("/demands", s.CreateDemand)
	e.PUT("/demands/:id/status", s.ReviewDemand)
	e.DELETE("/demands/:id", s.DeleteDemand)

	e.POST("/pickup-missions", s.CreatePickupMission)
	e.PUT("/pickup-missions/:id", s.UpdatePickupMission)
	e.GET("/pickup-missions/:id", s.GetPickupMission)
	e.GET("/pickup-missions/:id/security-code", s.GetMissionSecurityCode)

	e.POST("/delivery-missions", s.CreateDeliveryMission)
	e.POST("/delivery-missions/:id/deliver", s.ResolveDelivery)

	e.GET("/warehouses/:id/parcels", s.GetDepotParcels)
}

// RegisterParcel handles POST /parcels - takes a parcel into the system and
// assigns its tracking code.
func (s *Server) RegisterParcel(ctx echo.Context) error {
	var req RegisterParcelRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err), http.StatusBadRequest)
	}

	cmd, err := commands.NewRegisterParcelCommand(kernel.NewUUID(), req.ShipperEmail)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	registered, err := s.registerParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusCreated, ParcelResponse{
		ID:           registered.ID().String(),
		TrackingCode: registered.TrackingCode().String(),
		ShipperID:    registered.ShipperID().String(),
		Status:       registered.Status().String(),
	})
}

// OverrideParcelStatus handles PUT /parcels/:id/status - a manual state
// correction recorded in the tracking history.
func (s *Server) OverrideParcelStatus(ctx echo.Context) error {
	requester, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	var req OverrideParcelStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err), http.StatusBadRequest)
	}

	newStatus, err := parcel.StatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	cmd, err := commands.NewOverrideParcelStatusCommand(parcelID, newStatus, req.Note, requester)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	if err := s.overrideParcelStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, ParcelStatusResponse{
		ID:     parcelID.String(),
		Status: newStatus.String(),
	})
}

// TrackParcel handles GET /parcels/:code/tracking - the public tracking view.
func (s *Server) TrackParcel(ctx echo.Context) error {
	trackingCode, err := kernel.TrackingCodeFromString(ctx.Param("code"))
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	query, err := queries.NewTrackParcelQuery(trackingCode)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	resp, err := s.trackParcelHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	history := make([]TrackingEventResponse, len(resp.History))
	for i, entry := range resp.History {
		history[i] = TrackingEventResponse{
			FromStatus:  entry.FromStatus,
			ToStatus:    entry.ToStatus,
			MissionKind: entry.MissionKind,
			Note:        entry.Note,
			OccurredAt:  entry.OccurredAt,
		}
	}

	return ctx.JSON(http.StatusOK, TrackingResponse{
		TrackingCode: resp.TrackingCode,
		Status:       resp.Status,
		History:      history,
	})
}

// CreateDemand handles POST /demands - registers a shipper pickup demand.
func (s *Server) CreateDemand(ctx echo.Context) error {
	var req CreateDemandRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err), http.StatusBadRequest)
	}

	parcelIDs, err := parseUUIDList(req.ParcelIDs, "parcelIds")
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	demandID := kernel.NewUUID()
	cmd, err := commands.NewCreateDemandCommand(demandID, req.ShipperEmail, parcelIDs, req.Notes)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	if err := s.createDemandHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusCreated, DemandCreatedResponse{ID: demandID.String()})
}

// ReviewDemand handles PUT /demands/:id/status - an agent accepts or rejects
// a pending demand.
func (s *Server) ReviewDemand(ctx echo.Context) error {
	reviewer, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	demandID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	var req ReviewDemandRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err), http.StatusBadRequest)
	}

	decision, err := demand.StatusFromString(req.Decision)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	cmd, err := commands.NewReviewDemandCommand(demandID, reviewer, decision, req.Notes)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	if err := s.reviewDemandHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, DemandStatusResponse{
		ID:     demandID.String(),
		Status: decision.String(),
	})
}

// DeleteDemand handles DELETE /demands/:id - shippers retract their own open
// demands, agents may delete any open demand.
func (s *Server) DeleteDemand(ctx echo.Context) error {
	requester, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	demandID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	cmd, err := commands.NewDeleteDemandCommand(demandID, requester)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	if err := s.deleteDemandHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreatePickupMission handles POST /pickup-missions - bundles accepted
// demands into a driver assignment with a fresh security code.
func (s *Server) CreatePickupMission(ctx echo.Context) error {
	requester, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	var req CreatePickupMissionRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err), http.StatusBadRequest)
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	demandIDs, err := parseUUIDList(req.DemandIDs, "demandIds")
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	cmd, err := commands.NewCreatePickupMissionCommand(driverID, demandIDs, req.ScheduledAt, req.Notes, requester)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	created, err := s.createPickupMissionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusCreated, pickupMissionResponse(created))
}

// UpdatePickupMission handles PUT /pickup-missions/:id - drivers and
// dispatchers move the mission along its status machine. Completing requires
// the mission security code; a mismatch there is an authorization failure.
func (s *Server) UpdatePickupMission(ctx echo.Context) error {
	requester, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err, http.StatusForbidden)
	}

	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err, http.StatusForbidden)
	}

	var req UpdatePickupMissionRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err), http.StatusForbidden)
	}

	newStatus, err := mission.PickupStatusFromString(req.Status)
	if err != nil {
		return writeError(ctx, err, http.StatusForbidden)
	}

	var warehouseID kernel.UUID
	if req.WarehouseID != "" {
		warehouseID, err = kernel.UUIDFromString(req.WarehouseID)
		if err != nil {
			return writeError(ctx, err, http.StatusForbidden)
		}
	}

	cmd, err := commands.NewUpdatePickupMissionStatusCommand(
		missionID, newStatus, req.SecurityCode, warehouseID, requester)
	if err != nil {
		return writeError(ctx, err, http.StatusForbidden)
	}

	updated, err := s.updatePickupStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, http.StatusForbidden)
	}

	return ctx.JSON(http.StatusOK, pickupMissionResponse(updated))
}

// GetPickupMission handles GET /pickup-missions/:id - the mission projection
// with membership counts.
func (s *Server) GetPickupMission(ctx echo.Context) error {
	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	query, err := queries.NewGetPickupMissionQuery(missionID)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	resp, err := s.getPickupMissionHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, PickupMissionSummaryResponse{
		ID:          resp.ID.String(),
		Number:      resp.Number,
		DriverID:    resp.DriverID.String(),
		Status:      resp.Status,
		ScheduledAt: resp.ScheduledAt,
		Notes:       resp.Notes,
		DemandCount: resp.DemandCount,
		ParcelCount: resp.ParcelCount,
	})
}

// GetMissionSecurityCode handles GET /pickup-missions/:id/security-code -
// reveals the code to actors holding the view-code capability.
func (s *Server) GetMissionSecurityCode(ctx echo.Context) error {
	requester, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	query, err := queries.NewGetMissionSecurityCodeQuery(missionID, requester)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	resp, err := s.getSecurityCodeHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, SecurityCodeResponse{
		MissionNumber: resp.MissionNumber,
		SecurityCode:  resp.SecurityCode,
		Status:        resp.Status,
	})
}

// CreateDeliveryMission handles POST /delivery-missions - assigns depot-held
// parcels to a driver and issues per-parcel delivery codes.
func (s *Server) CreateDeliveryMission(ctx echo.Context) error {
	requester, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	var req CreateDeliveryMissionRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err), http.StatusBadRequest)
	}

	driverID, err := kernel.UUIDFromString(req.DriverID)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	warehouseID, err := kernel.UUIDFromString(req.WarehouseID)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	parcelIDs, err := parseUUIDList(req.ParcelIDs, "parcelIds")
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	cmd, err := commands.NewCreateDeliveryMissionCommand(
		driverID, warehouseID, req.DeliveryDate, parcelIDs, req.Notes, requester)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	created, err := s.createDeliveryMissionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusCreated, deliveryMissionResponse(created))
}

// ResolveDelivery handles POST /delivery-missions/:id/deliver - the driver
// submits the code collected from the recipient. A wrong code is ordinary
// input here, not an authorization failure.
func (s *Server) ResolveDelivery(ctx echo.Context) error {
	requester, err := actorFromHeaders(ctx)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	missionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	var req ResolveDeliveryRequest
	if err := ctx.Bind(&req); err != nil {
		return writeError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err), http.StatusBadRequest)
	}

	parcelID, err := kernel.UUIDFromString(req.ParcelID)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	cmd, err := commands.NewResolveDeliveryCommand(missionID, parcelID, req.Code, requester)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	outcome, parcelStatus, err := s.resolveDeliveryHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	return ctx.JSON(http.StatusOK, ResolveDeliveryResponse{
		Outcome:      outcomeString(outcome),
		ParcelStatus: parcelStatus.String(),
	})
}

// GetDepotParcels handles GET /warehouses/:id/parcels - depot inventory not
// claimed by any scheduled delivery mission.
func (s *Server) GetDepotParcels(ctx echo.Context) error {
	warehouseID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	query, err := queries.NewGetDepotParcelsQuery(warehouseID)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	rows, err := s.getDepotParcelsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err, http.StatusBadRequest)
	}

	response := make([]DepotParcelResponse, len(rows))
	for i, row := range rows {
		response[i] = DepotParcelResponse{
			ID:           row.ID.String(),
			TrackingCode: row.TrackingCode,
			Status:       row.Status,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func pickupMissionResponse(m *mission.PickupMission) PickupMissionResponse {
	return PickupMissionResponse{
		ID:          m.ID().String(),
		Number:      m.Number(),
		DriverID:    m.DriverID().String(),
		Status:      m.Status().String(),
		ScheduledAt: m.ScheduledAt(),
		Notes:       m.Notes(),
		DemandIDs:   uuidStrings(m.DemandIDs()),
		ParcelIDs:   uuidStrings(m.ParcelIDs()),
	}
}

func deliveryMissionResponse(m *mission.DeliveryMission) DeliveryMissionResponse {
	links := m.Links()
	parcels := make([]DeliveryLinkResponse, len(links))
	for i, link := range links {
		parcels[i] = DeliveryLinkResponse{
			ParcelID:    link.ParcelID.String(),
			Sequence:    link.Sequence,
			Status:      link.Status.String(),
			CompletedAt: link.CompletedAt,
		}
	}

	return DeliveryMissionResponse{
		ID:           m.ID().String(),
		DriverID:     m.DriverID().String(),
		WarehouseID:  m.WarehouseID().String(),
		DeliveryDate: m.DeliveryDate(),
		Status:       m.Status().String(),
		Notes:        m.Notes(),
		Parcels:      parcels,
	}
}

func outcomeString(o parcel.Outcome) string {
	switch o {
	case parcel.OutcomeDelivered:
		return "Delivered"
	case parcel.OutcomeFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func parseUUIDList(raw []string, paramName string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, len(raw))
	for i, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(paramName, err)
		}
		ids[i] = id
	}
	return ids, nil
}

func uuidStrings(ids []kernel.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
