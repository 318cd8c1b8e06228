// Package parcelrepo provides data transfer objects and mapping functions
// for parcel persistence. It implements the repository pattern for the
// parcel aggregate, converting between the domain entity and its database
// representation.
package parcelrepo

import (
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. The tracking code is unique per parcel; the delivery code
// pair is nullable and present only while the parcel rides a delivery
// mission.
type ParcelDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingCode string    `gorm:"uniqueIndex"`
	ShipperID    uuid.UUID `gorm:"type:uuid;index"`
	Status       int       `gorm:"index"`
	SuccessCode  *string    `gorm:"uniqueIndex"`
	FailureCode  *string    `gorm:"uniqueIndex"`
	WarehouseID  *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for parcel entities.
func (ParcelDTO) TableName() string {
	return "parcels"
}

// fromDomain converts a parcel domain aggregate to its database
// representation.
func fromDomain(p *parcel.Parcel) ParcelDTO {
	var warehouseID *uuid.UUID
	if id := p.WarehouseID(); id != nil {
		raw := id.Bytes()
		warehouseID = &raw
	}

	return ParcelDTO{
		ID:           p.ID().Bytes(),
		TrackingCode: p.TrackingCode().String(),
		ShipperID:    p.ShipperID().Bytes(),
		Status:       int(p.Status()),
		SuccessCode:  p.SuccessCode(),
		FailureCode:  p.FailureCode(),
		WarehouseID:  warehouseID,
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingCode, err := kernel.TrackingCodeFromString(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	shipperID, err := kernel.UUIDFromBytes(dto.ShipperID[:])
	if err != nil {
		return nil, err
	}

	var warehouseID *kernel.UUID
	if dto.WarehouseID != nil {
		wID, warehouseErr := kernel.UUIDFromBytes((*dto.WarehouseID)[:])
		if warehouseErr != nil {
			return nil, warehouseErr
		}

		warehouseID = &wID
	}

	return parcel.RestoreParcel(
		id,
		trackingCode,
		shipperID,
		parcel.Status(dto.Status),
		dto.SuccessCode,
		dto.FailureCode,
		warehouseID,
	)
}
