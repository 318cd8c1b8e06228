package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and repository instances bound to the transaction.
// Every multi-row mutation in the dispatch workflow (demand intake, mission
// creation, status propagation, outcome resolution) runs through one
// UnitOfWork; any failure after Begin rolls back every write.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// ParcelRepository returns a ParcelRepository bound to the current
	// transaction.
	ParcelRepository() ParcelRepository

	// DemandRepository returns a DemandRepository bound to the current
	// transaction.
	DemandRepository() DemandRepository

	// PickupMissionRepository returns a PickupMissionRepository bound to
	// the current transaction.
	PickupMissionRepository() PickupMissionRepository

	// DeliveryMissionRepository returns a DeliveryMissionRepository bound
	// to the current transaction.
	DeliveryMissionRepository() DeliveryMissionRepository

	// TrackingHistoryRepository returns a TrackingHistoryRepository bound
	// to the current transaction.
	TrackingHistoryRepository() TrackingHistoryRepository

	// StaffDirectory returns the read-only personnel view bound to the
	// current transaction.
	StaffDirectory() StaffDirectory
}
