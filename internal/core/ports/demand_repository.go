package ports

import (
	"context"

	"dispatch/internal/core/domain/model/demand"
	"dispatch/internal/core/domain/model/kernel"
)

// DemandRepository defines the persistence contract for demand aggregates
// and their parcel-membership links.
type DemandRepository interface {
	// Add persists a new demand and its membership links.
	Add(ctx context.Context, aggregate *demand.Demand) error

	// Update persists changes to an existing demand. Membership links are
	// immutable after creation and are not rewritten.
	Update(ctx context.Context, aggregate *demand.Demand) error

	// Get retrieves a demand by its unique identifier, members included.
	Get(ctx context.Context, id kernel.UUID) (*demand.Demand, error)

	// GetBatch retrieves all demands for the given ids, preserving the
	// input order. Missing ids produce an ObjectNotFoundError naming them.
	GetBatch(ctx context.Context, ids []kernel.UUID) ([]*demand.Demand, error)

	// Delete removes a demand and its membership links. The member parcels
	// themselves are never touched.
	Delete(ctx context.Context, id kernel.UUID) error

	// OpenDemandParcelIDs returns the subset of the given parcel ids that
	// are already claimed by an open demand (status Pending or Accepted).
	OpenDemandParcelIDs(ctx context.Context, parcelIDs []kernel.UUID) ([]kernel.UUID, error)
}
