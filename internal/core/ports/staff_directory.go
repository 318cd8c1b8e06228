package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// ShipperRecord is the slice of shipper data this service needs: identity
// and the agency the shipper currently belongs to.
type ShipperRecord struct {
	ID       kernel.UUID
	AgencyID kernel.UUID
	Email    string
}

// StaffDirectory is a read-only view into the personnel tables owned by the
// surrounding application. Personnel CRUD is out of scope here; this service
// only resolves shippers at demand creation and checks driver eligibility at
// mission creation.
type StaffDirectory interface {
	// ShipperByEmail resolves a shipper and their current agency.
	ShipperByEmail(ctx context.Context, email string) (ShipperRecord, error)

	// DriverIsEligible reports whether the driver exists and may be
	// assigned missions.
	DriverIsEligible(ctx context.Context, driverID kernel.UUID) (bool, error)
}
