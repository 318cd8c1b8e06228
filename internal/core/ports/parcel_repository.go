package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/parcel"
)

// ParcelRepository defines the persistence contract for parcel aggregates.
type ParcelRepository interface {
	// Add persists a new parcel aggregate.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel unconditionally.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// UpdateFromStatus persists the parcel only if its stored status still
	// equals expected. Returns a StaleStateError when a concurrent
	// transition already moved the parcel; the aggregate's new state is
	// not written in that case.
	UpdateFromStatus(ctx context.Context, aggregate *parcel.Parcel, expected parcel.Status) error

	// Get retrieves a parcel by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	// GetByTrackingCode retrieves a parcel by its external tracking code.
	GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*parcel.Parcel, error)

	// GetBatch retrieves all parcels for the given ids, preserving the
	// input order. Missing ids produce an ObjectNotFoundError naming them.
	GetBatch(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error)

	// GetAllInStatus retrieves every parcel currently in the given status.
	GetAllInStatus(ctx context.Context, status parcel.Status) ([]*parcel.Parcel, error)

	// SuccessCodeExists checks the active success-code column for a
	// candidate code. Runs inside the repository's transaction.
	SuccessCodeExists(ctx context.Context, code string) (bool, error)

	// FailureCodeExists checks the active failure-code column for a
	// candidate code. Runs inside the repository's transaction.
	FailureCodeExists(ctx context.Context, code string) (bool, error)
}
