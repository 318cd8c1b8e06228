// Package staffrepo is the read-only view into the personnel tables owned
// by the surrounding application. Shippers and drivers are managed
// elsewhere; this service only reads them.
package staffrepo

import (
	"context"
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShipperDTO mirrors the externally owned shippers table.
type ShipperDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgencyID uuid.UUID `gorm:"type:uuid;index"`
	Email    string    `gorm:"uniqueIndex"`
}

// TableName specifies the database table name for shippers.
func (ShipperDTO) TableName() string {
	return "shippers"
}

// DriverDTO mirrors the externally owned drivers table. Active drivers may
// be assigned missions.
type DriverDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Active bool
}

// TableName specifies the database table name for drivers.
func (DriverDTO) TableName() string {
	return "drivers"
}

// GormStaffDirectory implements StaffDirectory using GORM.
type GormStaffDirectory struct {
	db *gorm.DB
}

// NewGormStaffDirectory creates a new GORM staff directory.
func NewGormStaffDirectory(db *gorm.DB) *GormStaffDirectory {
	return &GormStaffDirectory{db: db}
}

// ShipperByEmail resolves a shipper and their current agency. The lookup is
// case-insensitive on the email.
func (r *GormStaffDirectory) ShipperByEmail(ctx context.Context, email string) (ports.ShipperRecord, error) {
	if strings.TrimSpace(email) == "" {
		return ports.ShipperRecord{}, errs.NewValueIsRequiredError("email")
	}

	var dto ShipperDTO
	err := r.db.WithContext(ctx).
		First(&dto, "lower(email) = lower(?)", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ShipperRecord{}, errs.NewObjectNotFoundError("shipper", email)
		}
		return ports.ShipperRecord{}, err
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.ShipperRecord{}, err
	}

	agencyID, err := kernel.UUIDFromBytes(dto.AgencyID[:])
	if err != nil {
		return ports.ShipperRecord{}, err
	}

	return ports.ShipperRecord{
		ID:       id,
		AgencyID: agencyID,
		Email:    dto.Email,
	}, nil
}

// DriverIsEligible reports whether the driver exists and may be assigned
// missions. An unknown driver is simply not eligible.
func (r *GormStaffDirectory) DriverIsEligible(ctx context.Context, driverID kernel.UUID) (bool, error) {
	if err := driverID.Validate(); err != nil {
		return false, err
	}

	var dto DriverDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", driverID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return dto.Active, nil
}
