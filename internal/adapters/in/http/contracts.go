package http

import "time"

// Wire contracts for the dispatch API. The service sits behind the agency
// gateway, so the bodies mirror the domain vocabulary directly.

// ErrorResponse is the error envelope returned by every route.
type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type RegisterParcelRequest struct {
	ShipperEmail string `json:"shipperEmail"`
}

type ParcelResponse struct {
	ID           string `json:"id"`
	TrackingCode string `json:"trackingCode"`
	ShipperID    string `json:"shipperId"`
	Status       string `json:"status"`
}

type ParcelStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type CreateDemandRequest struct {
	ShipperEmail string   `json:"shipperEmail"`
	ParcelIDs    []string `json:"parcelIds"`
	Notes        string   `json:"notes"`
}

type DemandCreatedResponse struct {
	ID string `json:"id"`
}

type ReviewDemandRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
}

type DemandStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type CreatePickupMissionRequest struct {
	DriverID    string    `json:"driverId"`
	DemandIDs   []string  `json:"demandIds"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Notes       string    `json:"notes"`
}

// UpdatePickupMissionRequest moves a mission along its status machine.
// SecurityCode and WarehouseID matter only when Status is "Completed".
type UpdatePickupMissionRequest struct {
	Status       string `json:"status"`
	SecurityCode string `json:"securityCode,omitempty"`
	WarehouseID  string `json:"warehouseId,omitempty"`
}

// PickupMissionResponse is the command-side view of a mission. The security
// code never appears here; it has its own capability-gated route.
type PickupMissionResponse struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	DriverID    string    `json:"driverId"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Notes       string    `json:"notes,omitempty"`
	DemandIDs   []string  `json:"demandIds"`
	ParcelIDs   []string  `json:"parcelIds"`
}

// PickupMissionSummaryResponse is the read-side projection with membership
// counts instead of full ID lists.
type PickupMissionSummaryResponse struct {
	ID          string    `json:"id"`
	Number      string    `json:"number"`
	DriverID    string    `json:"driverId"`
	Status      string    `json:"status"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Notes       string    `json:"notes,omitempty"`
	DemandCount int       `json:"demandCount"`
	ParcelCount int       `json:"parcelCount"`
}

type SecurityCodeResponse struct {
	MissionNumber string `json:"missionNumber"`
	SecurityCode  string `json:"securityCode"`
	Status        string `json:"status"`
}

type CreateDeliveryMissionRequest struct {
	DriverID     string    `json:"driverId"`
	WarehouseID  string    `json:"warehouseId"`
	DeliveryDate time.Time `json:"deliveryDate"`
	ParcelIDs    []string  `json:"parcelIds"`
	Notes        string    `json:"notes"`
}

type DeliveryMissionResponse struct {
	ID           string                 `json:"id"`
	DriverID     string                 `json:"driverId"`
	WarehouseID  string                 `json:"warehouseId"`
	DeliveryDate time.Time              `json:"deliveryDate"`
	Status       string                 `json:"status"`
	Notes        string                 `json:"notes,omitempty"`
	Parcels      []DeliveryLinkResponse `json:"parcels"`
}

type DeliveryLinkResponse struct {
	ParcelID    string     `json:"parcelId"`
	Sequence    int        `json:"sequence"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type ResolveDeliveryRequest struct {
	ParcelID string `json:"parcelId"`
	Code     string `json:"code"`
}

type ResolveDeliveryResponse struct {
	Outcome      string `json:"outcome"`
	ParcelStatus string `json:"parcelStatus"`
}

type OverrideParcelStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type TrackingResponse struct {
	TrackingCode string                  `json:"trackingCode"`
	Status       string                  `json:"status"`
	History      []TrackingEventResponse `json:"history"`
}

type TrackingEventResponse struct {
	FromStatus  string    `json:"fromStatus,omitempty"`
	ToStatus    string    `json:"toStatus"`
	MissionKind string    `json:"missionKind,omitempty"`
	Note        string    `json:"note,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

type DepotParcelResponse struct {
	ID           string `json:"id"`
	TrackingCode string `json:"trackingCode"`
	Status       string `json:"status"`
}
