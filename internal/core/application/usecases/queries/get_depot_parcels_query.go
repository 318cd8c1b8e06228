package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetDepotParcelsQueryIsNotConstructed = errors.New(
	"GetDepotParcelsQuery must be created via NewGetDepotParcelsQuery constructor",
)

// GetDepotParcelsQuery lists parcels held at a depot that are free to be
// loaded onto a delivery mission: depot-held status and no active mission
// link.
type GetDepotParcelsQuery struct {
	warehouseID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDepotParcelsQuery(warehouseID kernel.UUID) (GetDepotParcelsQuery, error) {
	if err := warehouseID.Validate(); err != nil {
		return GetDepotParcelsQuery{}, err
	}
	return GetDepotParcelsQuery{
		warehouseID: warehouseID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q GetDepotParcelsQuery) Validate() error {
	return q.guard.Validate(ErrGetDepotParcelsQueryIsNotConstructed)
}

func (q GetDepotParcelsQuery) WarehouseID() kernel.UUID {
	return q.warehouseID
}

// GetDepotParcelsQueryResponse is one depot-held parcel eligible for a
// delivery run.
type GetDepotParcelsQueryResponse struct {
	ID           kernel.UUID
	TrackingCode string
	Status       string
}
