// Package postgres provides the GORM-based Unit of Work and the
// repository implementations behind the dispatch persistence ports.
//
// Every command handler runs against one UnitOfWork: Begin opens a
// database transaction, the repository accessors hand out repositories
// bound to that transaction, and Commit/Rollback close it. Reads issued
// through a unit of work without Begin fall through to the main
// connection.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.ParcelRepository().Add(ctx, parcel); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns at most one transaction and is not safe
// for concurrent use; concurrent operations take their own instance from
// the factory.
package postgres

import (
	"context"

	"dispatch/internal/adapters/out/postgres/deliverymissionrepo"
	"dispatch/internal/adapters/out/postgres/demandrepo"
	"dispatch/internal/adapters/out/postgres/historyrepo"
	"dispatch/internal/adapters/out/postgres/parcelrepo"
	"dispatch/internal/adapters/out/postgres/pickupmissionrepo"
	"dispatch/internal/adapters/out/postgres/staffrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of
// work. Kept for post-commit processing such as event publication.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate interface{}
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one GORM
// connection pool. Each business operation gets a fresh instance with its
// own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory bound to the given
// connection.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction across the dispatch
// repositories and records every aggregate they touch.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling Begin twice on the same instance
// is a no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit makes the transaction's changes permanent and closes it.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction's changes and closes it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// ParcelRepository returns the parcel repository bound to the current
// transaction.
func (uow *GormUnitOfWork) ParcelRepository() ports.ParcelRepository {
	return parcelrepo.NewGormParcelRepository(uow.conn(), uow)
}

// DemandRepository returns the demand repository bound to the current
// transaction.
func (uow *GormUnitOfWork) DemandRepository() ports.DemandRepository {
	return demandrepo.NewGormDemandRepository(uow.conn(), uow)
}

// PickupMissionRepository returns the pickup mission repository bound to
// the current transaction.
func (uow *GormUnitOfWork) PickupMissionRepository() ports.PickupMissionRepository {
	return pickupmissionrepo.NewGormPickupMissionRepository(uow.conn(), uow)
}

// DeliveryMissionRepository returns the delivery mission repository bound
// to the current transaction.
func (uow *GormUnitOfWork) DeliveryMissionRepository() ports.DeliveryMissionRepository {
	return deliverymissionrepo.NewGormDeliveryMissionRepository(uow.conn(), uow)
}

// TrackingHistoryRepository returns the history repository bound to the
// current transaction.
func (uow *GormUnitOfWork) TrackingHistoryRepository() ports.TrackingHistoryRepository {
	return historyrepo.NewGormTrackingHistoryRepository(uow.conn())
}

// StaffDirectory returns the read-only personnel directory bound to the
// current transaction.
func (uow *GormUnitOfWork) StaffDirectory() ports.StaffDirectory {
	return staffrepo.NewGormStaffDirectory(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this
// unit of work. Called by the repository implementations.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
