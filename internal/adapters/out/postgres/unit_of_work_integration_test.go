package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/deliverymissionrepo"
	"dispatch/internal/adapters/out/postgres/demandrepo"
	"dispatch/internal/adapters/out/postgres/historyrepo"
	"dispatch/internal/adapters/out/postgres/parcelrepo"
	"dispatch/internal/adapters/out/postgres/pickupmissionrepo"
	"dispatch/internal/adapters/out/postgres/staffrepo"
	"dispatch/internal/core/domain/model/demand"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based Unit of Work and
// the dispatch repositories against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite starts the PostgreSQL container, connects, and migrates the
// dispatch schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// The delivery-side MissionParcelDTO is the superset view of the shared
	// mission_parcels table, so it is the one migrated.
	err = db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&demandrepo.DemandDTO{},
		&demandrepo.DemandParcelDTO{},
		&pickupmissionrepo.PickupMissionDTO{},
		&pickupmissionrepo.MissionDemandDTO{},
		&deliverymissionrepo.DeliveryMissionDTO{},
		&deliverymissionrepo.MissionParcelDTO{},
		&historyrepo.EventDTO{},
		&staffrepo.ShipperDTO{},
		&staffrepo.DriverDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(`TRUNCATE TABLE
		parcels, demands, demand_parcels,
		pickup_missions, mission_demands, mission_parcels,
		delivery_missions, parcel_tracking_history,
		shippers, drivers`).Error
	suite.Require().NoError(err)
}

// TearDownSuite terminates the PostgreSQL container.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.ParcelRepository())
	suite.NotNil(uow1.DemandRepository())
	suite.NotNil(uow1.PickupMissionRepository())
	suite.NotNil(uow2.DeliveryMissionRepository())
	suite.NotNil(uow2.TrackingHistoryRepository())
	suite.NotNil(uow2.StaffDirectory())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_DemandIntakeWorkflow walks a parcel from registration into
// an open demand and verifies the membership queries see it.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DemandIntakeWorkflow() {
	ctx := context.Background()
	shipperID, agencyID := suite.seedShipper("intake@shipper.test")

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	p1 := suite.newPendingParcel(shipperID)
	p2 := suite.newPendingParcel(shipperID)
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p1))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p2))

	d, err := demand.NewDemand(kernel.NewUUID(), shipperID, agencyID,
		[]kernel.UUID{p1.ID(), p2.ID()}, "fragile goods")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DemandRepository().Add(ctx, d))

	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()
	restored, err := newUow.DemandRepository().Get(ctx, d.ID())
	suite.Require().NoError(err)
	suite.Equal(demand.Pending, restored.Status())
	suite.Equal([]kernel.UUID{p1.ID(), p2.ID()}, restored.ParcelIDs(),
		"Membership order should survive the round trip")

	claimed, err := newUow.DemandRepository().OpenDemandParcelIDs(ctx,
		[]kernel.UUID{p1.ID(), p2.ID(), kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{p1.ID(), p2.ID()}, claimed)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	shipperID, agencyID := suite.seedShipper("rollback@shipper.test")

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	p := suite.newPendingParcel(shipperID)
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	d, err := demand.NewDemand(kernel.NewUUID(), shipperID, agencyID,
		[]kernel.UUID{p.ID()}, "")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DemandRepository().Add(ctx, d))

	_, err = uow.ParcelRepository().Get(ctx, p.ID())
	suite.Require().NoError(err, "Parcel should be visible inside the transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.ParcelRepository().Get(ctx, p.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Parcel should not exist after rollback")
	_, err = newUow.DemandRepository().Get(ctx, d.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound, "Demand should not exist after rollback")
}

// TestUnitOfWork_ParcelOptimisticUpdate verifies the status-guarded write
// path: the guarded update succeeds exactly once per observed status.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ParcelOptimisticUpdate() {
	ctx := context.Background()
	shipperID, _ := suite.seedShipper("optimistic@shipper.test")

	uow := suite.factory.Create()
	p := suite.newPendingParcel(shipperID)
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	// First writer observed Pending and wins.
	suite.Require().NoError(p.TransitionTo(parcel.ToPickup))
	suite.Require().NoError(uow.ParcelRepository().UpdateFromStatus(ctx, p, parcel.Pending))

	// Second writer also observed Pending; its guarded write must lose.
	stale := suite.newPendingParcelWithID(p.ID(), shipperID, p.TrackingCode())
	suite.Require().NoError(stale.TransitionTo(parcel.ToPickup))
	err := uow.ParcelRepository().UpdateFromStatus(ctx, stale, parcel.Pending)
	suite.Require().ErrorIs(err, errs.ErrStaleState)

	current, err := uow.ParcelRepository().Get(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.ToPickup, current.Status(), "The losing write must not land")
}

// TestUnitOfWork_PickupMissionWorkflow builds a mission over an accepted
// demand and drives it to completion.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PickupMissionWorkflow() {
	ctx := context.Background()
	shipperID, agencyID := suite.seedShipper("pickup@shipper.test")
	driverID := suite.seedDriver(true)

	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	p := suite.newPendingParcel(shipperID)
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	d, err := demand.RestoreDemand(kernel.NewUUID(), shipperID, agencyID,
		demand.Accepted, nil, nil, "", []kernel.UUID{p.ID()})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DemandRepository().Add(ctx, d))

	seq, err := uow.PickupMissionRepository().NextMissionSequence(ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal(1, seq)

	m, err := mission.NewPickupMission(
		kernel.NewUUID(),
		mission.FormatMissionNumber(2026, seq),
		driverID,
		"CFG7HK",
		time.Now().UTC().Add(24*time.Hour),
		kernel.NewUUID(),
		"",
		[]kernel.UUID{d.ID()},
		[]kernel.UUID{p.ID()},
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.PickupMissionRepository().Add(ctx, m))
	suite.Require().NoError(uow.Commit(ctx))

	newUow := suite.factory.Create()
	restored, err := newUow.PickupMissionRepository().Get(ctx, m.ID())
	suite.Require().NoError(err)
	suite.Equal("PM-2026-0001", restored.Number())
	suite.Equal([]kernel.UUID{d.ID()}, restored.DemandIDs())
	suite.Equal([]kernel.UUID{p.ID()}, restored.ParcelIDs())

	byNumber, err := newUow.PickupMissionRepository().GetByNumber(ctx, "PM-2026-0001")
	suite.Require().NoError(err)
	suite.True(restored.IsEqual(byNumber))

	active, err := newUow.PickupMissionRepository().ActiveMissionNumbersByDemand(ctx, []kernel.UUID{d.ID()})
	suite.Require().NoError(err)
	suite.Equal("PM-2026-0001", active[d.ID()])

	nextSeq, err := newUow.PickupMissionRepository().NextMissionSequence(ctx, 2026)
	suite.Require().NoError(err)
	suite.Equal(2, nextSeq)

	// Drive the mission to its terminal state; the demand link goes inactive.
	suite.Require().NoError(restored.TransitionTo(mission.PickupAccepted))
	suite.Require().NoError(restored.TransitionTo(mission.PickupCollected))
	suite.Require().NoError(restored.Complete("cfg7hk"))
	suite.Require().NoError(newUow.PickupMissionRepository().Update(ctx, restored))

	active, err = newUow.PickupMissionRepository().ActiveMissionNumbersByDemand(ctx, []kernel.UUID{d.ID()})
	suite.Require().NoError(err)
	suite.Empty(active)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OverduePickupMissions() {
	ctx := context.Background()
	shipperID, agencyID := suite.seedShipper("overdue@shipper.test")
	driverID := suite.seedDriver(true)

	uow := suite.factory.Create()
	p := suite.newPendingParcel(shipperID)
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	d, err := demand.RestoreDemand(kernel.NewUUID(), shipperID, agencyID,
		demand.Accepted, nil, nil, "", []kernel.UUID{p.ID()})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DemandRepository().Add(ctx, d))

	m, err := mission.NewPickupMission(
		kernel.NewUUID(), "PM-2026-0001", driverID, "CFG7HK",
		time.Now().UTC().Add(-48*time.Hour), kernel.NewUUID(), "",
		[]kernel.UUID{d.ID()}, []kernel.UUID{p.ID()},
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.PickupMissionRepository().Add(ctx, m))

	overdue, err := uow.PickupMissionRepository().GetAllOverdue(ctx, time.Now().UTC().Add(-24*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(overdue, 1)
	suite.True(m.IsEqual(overdue[0]))
	suite.Equal([]kernel.UUID{p.ID()}, overdue[0].ParcelIDs(),
		"Overdue missions should come back fully loaded")

	fresh, err := uow.PickupMissionRepository().GetAllOverdue(ctx, time.Now().UTC().Add(-72*time.Hour))
	suite.Require().NoError(err)
	suite.Empty(fresh)
}

// TestUnitOfWork_DeliveryMissionLinks verifies link resolution state
// survives the round trip and drives the active-membership query.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DeliveryMissionLinks() {
	ctx := context.Background()
	shipperID, _ := suite.seedShipper("delivery@shipper.test")
	driverID := suite.seedDriver(true)
	warehouseID := kernel.NewUUID()

	uow := suite.factory.Create()
	p1 := suite.depotParcel(shipperID, warehouseID)
	p2 := suite.depotParcel(shipperID, warehouseID)
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p1))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p2))

	m, err := mission.NewDeliveryMission(
		kernel.NewUUID(), driverID, warehouseID,
		time.Now().UTC().Add(24*time.Hour), kernel.NewUUID(), "",
		[]kernel.UUID{p1.ID(), p2.ID()},
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DeliveryMissionRepository().Add(ctx, m))

	active, err := uow.DeliveryMissionRepository().ActiveMissionParcelIDs(ctx,
		[]kernel.UUID{p1.ID(), p2.ID(), kernel.NewUUID()})
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{p1.ID(), p2.ID()}, active)

	// Resolve one link; the mission stays scheduled.
	resolvedAt := time.Now().UTC()
	suite.Require().NoError(m.ResolveParcel(p1.ID(), parcel.OutcomeDelivered, resolvedAt))
	suite.Require().NoError(uow.DeliveryMissionRepository().Update(ctx, m))

	restored, err := uow.DeliveryMissionRepository().Get(ctx, m.ID())
	suite.Require().NoError(err)
	suite.Equal(mission.DeliveryScheduled, restored.Status())

	link, err := restored.Link(p1.ID())
	suite.Require().NoError(err)
	suite.Equal(mission.LinkCompleted, link.Status)
	suite.Require().NotNil(link.CompletedAt)
	suite.WithinDuration(resolvedAt, *link.CompletedAt, time.Second)

	// Resolving the last link completes the mission and frees the parcels.
	suite.Require().NoError(restored.ResolveParcel(p2.ID(), parcel.OutcomeFailed, time.Now().UTC()))
	suite.Require().NoError(uow.DeliveryMissionRepository().Update(ctx, restored))

	final, err := uow.DeliveryMissionRepository().Get(ctx, m.ID())
	suite.Require().NoError(err)
	suite.Equal(mission.DeliveryCompleted, final.Status())

	active, err = uow.DeliveryMissionRepository().ActiveMissionParcelIDs(ctx,
		[]kernel.UUID{p1.ID(), p2.ID()})
	suite.Require().NoError(err)
	suite.Empty(active)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TrackingHistory() {
	ctx := context.Background()
	shipperID, _ := suite.seedShipper("history@shipper.test")

	uow := suite.factory.Create()
	p := suite.newPendingParcel(shipperID)
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	base := time.Now().UTC().Truncate(time.Second)
	intake, err := tracking.NewEvent(kernel.NewUUID(), p.ID(),
		parcel.UnknownStatus, parcel.Pending, tracking.MissionRef{},
		shipperID, "parcel registered", base)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TrackingHistoryRepository().Append(ctx, intake))

	missionID := kernel.NewUUID()
	move, err := tracking.NewEvent(kernel.NewUUID(), p.ID(),
		parcel.Pending, parcel.ToPickup, tracking.NewPickupRef(missionID),
		kernel.NewUUID(), "assigned to pickup mission PM-2026-0001", base.Add(time.Minute))
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TrackingHistoryRepository().Append(ctx, move))

	events, err := uow.TrackingHistoryRepository().ListByParcel(ctx, p.ID())
	suite.Require().NoError(err)
	suite.Require().Len(events, 2)

	suite.Equal(parcel.UnknownStatus, events[0].FromStatus())
	suite.Equal(parcel.Pending, events[0].ToStatus())
	suite.True(events[0].Mission().IsZero())

	suite.Equal(parcel.ToPickup, events[1].ToStatus())
	suite.Equal(tracking.KindPickup, events[1].Mission().Kind)
	suite.True(missionID.IsEqual(events[1].Mission().ID))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StaffDirectory() {
	ctx := context.Background()
	shipperID, agencyID := suite.seedShipper("Directory@Shipper.Test")
	activeDriver := suite.seedDriver(true)
	retiredDriver := suite.seedDriver(false)

	directory := suite.factory.Create().StaffDirectory()

	record, err := directory.ShipperByEmail(ctx, "directory@shipper.test")
	suite.Require().NoError(err, "Email lookup should be case-insensitive")
	suite.True(shipperID.IsEqual(record.ID))
	suite.True(agencyID.IsEqual(record.AgencyID))

	_, err = directory.ShipperByEmail(ctx, "nobody@shipper.test")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	eligible, err := directory.DriverIsEligible(ctx, activeDriver)
	suite.Require().NoError(err)
	suite.True(eligible)

	eligible, err = directory.DriverIsEligible(ctx, retiredDriver)
	suite.Require().NoError(err)
	suite.False(eligible)

	eligible, err = directory.DriverIsEligible(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(eligible, "Unknown drivers are simply not eligible")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SecurityCodeLookups() {
	ctx := context.Background()
	shipperID, agencyID := suite.seedShipper("codes@shipper.test")
	driverID := suite.seedDriver(true)
	warehouseID := kernel.NewUUID()

	uow := suite.factory.Create()

	p := suite.depotParcel(shipperID, warehouseID)
	suite.Require().NoError(p.AssignDeliveryCodes("QX2M7P", "ZR9K4W"))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	demandParcel := suite.newPendingParcel(shipperID)
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, demandParcel))
	d, err := demand.RestoreDemand(kernel.NewUUID(), shipperID, agencyID,
		demand.Accepted, nil, nil, "", []kernel.UUID{demandParcel.ID()})
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DemandRepository().Add(ctx, d))

	m, err := mission.NewPickupMission(
		kernel.NewUUID(), "PM-2026-0001", driverID, "CFG7HK",
		time.Now().UTC().Add(24*time.Hour), kernel.NewUUID(), "",
		[]kernel.UUID{d.ID()}, []kernel.UUID{demandParcel.ID()},
	)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.PickupMissionRepository().Add(ctx, m))

	exists, err := uow.PickupMissionRepository().SecurityCodeExists(ctx, "cfg7hk")
	suite.Require().NoError(err)
	suite.True(exists, "Lookup should be case-insensitive")

	exists, err = uow.PickupMissionRepository().SecurityCodeExists(ctx, "NOPE99")
	suite.Require().NoError(err)
	suite.False(exists)

	exists, err = uow.ParcelRepository().SuccessCodeExists(ctx, "qx2m7p")
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = uow.ParcelRepository().FailureCodeExists(ctx, "ZR9K4W")
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = uow.ParcelRepository().SuccessCodeExists(ctx, "ZR9K4W")
	suite.Require().NoError(err)
	suite.False(exists, "Failure codes must not satisfy the success lookup")
}

// TestUnitOfWork_DuplicateSecurityCodesRejected verifies the unique indexes
// back up the pre-insert lookups: a concurrent writer that missed the lookup
// still fails when its duplicate code reaches the database.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DuplicateSecurityCodesRejected() {
	ctx := context.Background()
	shipperID, agencyID := suite.seedShipper("duplicate@shipper.test")
	driverID := suite.seedDriver(true)
	warehouseID := kernel.NewUUID()

	uow := suite.factory.Create()

	newMission := func(number string, parcelID, demandID kernel.UUID) *mission.PickupMission {
		m, err := mission.NewPickupMission(
			kernel.NewUUID(), number, driverID, "CFG7HK",
			time.Now().UTC().Add(24*time.Hour), kernel.NewUUID(), "",
			[]kernel.UUID{demandID}, []kernel.UUID{parcelID},
		)
		suite.Require().NoError(err)
		return m
	}

	seedDemand := func() (kernel.UUID, kernel.UUID) {
		p := suite.newPendingParcel(shipperID)
		suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))
		d, err := demand.RestoreDemand(kernel.NewUUID(), shipperID, agencyID,
			demand.Accepted, nil, nil, "", []kernel.UUID{p.ID()})
		suite.Require().NoError(err)
		suite.Require().NoError(uow.DemandRepository().Add(ctx, d))
		return p.ID(), d.ID()
	}

	p1, d1 := seedDemand()
	suite.Require().NoError(uow.PickupMissionRepository().Add(ctx, newMission("PM-2026-0001", p1, d1)))

	p2, d2 := seedDemand()
	err := uow.PickupMissionRepository().Add(ctx, newMission("PM-2026-0002", p2, d2))
	suite.Require().Error(err, "Second mission with the same security code must not land")

	first := suite.depotParcel(shipperID, warehouseID)
	suite.Require().NoError(first.AssignDeliveryCodes("QX2M7P", "ZR9K4W"))
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, first))

	second := suite.depotParcel(shipperID, warehouseID)
	suite.Require().NoError(second.AssignDeliveryCodes("QX2M7P", "HT5N8B"))
	err = uow.ParcelRepository().Add(ctx, second)
	suite.Require().Error(err, "Duplicate success code must not land")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GetBatchNamesMissingIDs() {
	ctx := context.Background()
	shipperID, _ := suite.seedShipper("batch@shipper.test")

	uow := suite.factory.Create()
	p := suite.newPendingParcel(shipperID)
	suite.Require().NoError(uow.ParcelRepository().Add(ctx, p))

	missing := kernel.NewUUID()
	_, err := uow.ParcelRepository().GetBatch(ctx, []kernel.UUID{p.ID(), missing})
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Contains(err.Error(), missing.String())
}

// seedShipper inserts a shipper row and returns its id and agency id.
func (suite *UnitOfWorkIntegrationTestSuite) seedShipper(email string) (kernel.UUID, kernel.UUID) {
	shipperID := kernel.NewUUID()
	agencyID := kernel.NewUUID()
	dto := staffrepo.ShipperDTO{
		ID:       shipperID.Bytes(),
		AgencyID: agencyID.Bytes(),
		Email:    email,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return shipperID, agencyID
}

// seedDriver inserts a driver row and returns its id.
func (suite *UnitOfWorkIntegrationTestSuite) seedDriver(active bool) kernel.UUID {
	driverID := kernel.NewUUID()
	dto := staffrepo.DriverDTO{
		ID:     driverID.Bytes(),
		Active: active,
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
	return driverID
}

// newPendingParcel creates a freshly registered parcel.
func (suite *UnitOfWorkIntegrationTestSuite) newPendingParcel(shipperID kernel.UUID) *parcel.Parcel {
	code, err := kernel.NewTrackingCode()
	suite.Require().NoError(err)
	p, err := parcel.NewParcel(kernel.NewUUID(), code, shipperID)
	suite.Require().NoError(err)
	return p
}

// newPendingParcelWithID rebuilds a pending parcel sharing identity with an
// existing one, simulating a second process holding a stale copy.
func (suite *UnitOfWorkIntegrationTestSuite) newPendingParcelWithID(id kernel.UUID, shipperID kernel.UUID, code kernel.TrackingCode) *parcel.Parcel {
	p, err := parcel.RestoreParcel(id, code, shipperID, parcel.Pending, nil, nil, nil)
	suite.Require().NoError(err)
	return p
}

// depotParcel creates a parcel already checked in at the given warehouse.
func (suite *UnitOfWorkIntegrationTestSuite) depotParcel(shipperID, warehouseID kernel.UUID) *parcel.Parcel {
	code, err := kernel.NewTrackingCode()
	suite.Require().NoError(err)
	p, err := parcel.RestoreParcel(kernel.NewUUID(), code, shipperID,
		parcel.AtDepot, nil, nil, &warehouseID)
	suite.Require().NoError(err)
	return p
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
