// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DemandUoW manages transactions for demand intake and review.
	// These operations touch demands, the parcels they claim, and the
	// personnel directory, but never missions or history.
	DemandUoW interface {
		TxManager
		ParcelRepository() ports.ParcelRepository
		DemandRepository() ports.DemandRepository
		StaffDirectory() ports.StaffDirectory
	}

	// DemandUoWFactory creates new demand unit of work instances.
	DemandUoWFactory interface {
		Create() DemandUoW
	}

	// UoW manages transactions across the full dispatch aggregate set.
	// Used by mission building, status propagation and outcome resolution,
	// all of which move parcels and append history in the same transaction.
	UoW interface {
		TxManager
		ParcelRepository() ports.ParcelRepository
		DemandRepository() ports.DemandRepository
		PickupMissionRepository() ports.PickupMissionRepository
		DeliveryMissionRepository() ports.DeliveryMissionRepository
		TrackingHistoryRepository() ports.TrackingHistoryRepository
		StaffDirectory() ports.StaffDirectory
	}

	// UoWFactory creates new unit of work instances for mission-scope
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)
