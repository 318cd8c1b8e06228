package commands_test

import (
	"context"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/demand"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) UpdateFromStatus(ctx context.Context, p *parcel.Parcel, expected parcel.Status) error {
	args := m.Called(ctx, p, expected)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetByTrackingCode(ctx context.Context, code kernel.TrackingCode) (*parcel.Parcel, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetBatch(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) GetAllInStatus(ctx context.Context, status parcel.Status) ([]*parcel.Parcel, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) SuccessCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockParcelRepository) FailureCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

type MockDemandRepository struct{ mock.Mock }

func (m *MockDemandRepository) Add(ctx context.Context, d *demand.Demand) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDemandRepository) Update(ctx context.Context, d *demand.Demand) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDemandRepository) Get(ctx context.Context, id kernel.UUID) (*demand.Demand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*demand.Demand), args.Error(1)
}

func (m *MockDemandRepository) GetBatch(ctx context.Context, ids []kernel.UUID) ([]*demand.Demand, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*demand.Demand), args.Error(1)
}

func (m *MockDemandRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDemandRepository) OpenDemandParcelIDs(ctx context.Context, parcelIDs []kernel.UUID) ([]kernel.UUID, error) {
	args := m.Called(ctx, parcelIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockPickupMissionRepository struct{ mock.Mock }

func (m *MockPickupMissionRepository) Add(ctx context.Context, aggregate *mission.PickupMission) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPickupMissionRepository) Update(ctx context.Context, aggregate *mission.PickupMission) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPickupMissionRepository) Get(ctx context.Context, id kernel.UUID) (*mission.PickupMission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mission.PickupMission), args.Error(1)
}

func (m *MockPickupMissionRepository) GetByNumber(ctx context.Context, number string) (*mission.PickupMission, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mission.PickupMission), args.Error(1)
}

func (m *MockPickupMissionRepository) ActiveMissionNumbersByDemand(
	ctx context.Context, demandIDs []kernel.UUID,
) (map[kernel.UUID]string, error) {
	args := m.Called(ctx, demandIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]string), args.Error(1)
}

func (m *MockPickupMissionRepository) SecurityCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockPickupMissionRepository) NextMissionSequence(ctx context.Context, year int) (int, error) {
	args := m.Called(ctx, year)
	return args.Int(0), args.Error(1)
}

func (m *MockPickupMissionRepository) GetAllOverdue(ctx context.Context, cutoff time.Time) ([]*mission.PickupMission, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*mission.PickupMission), args.Error(1)
}

type MockDeliveryMissionRepository struct{ mock.Mock }

func (m *MockDeliveryMissionRepository) Add(ctx context.Context, aggregate *mission.DeliveryMission) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryMissionRepository) Update(ctx context.Context, aggregate *mission.DeliveryMission) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockDeliveryMissionRepository) Get(ctx context.Context, id kernel.UUID) (*mission.DeliveryMission, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mission.DeliveryMission), args.Error(1)
}

func (m *MockDeliveryMissionRepository) ActiveMissionParcelIDs(
	ctx context.Context, parcelIDs []kernel.UUID,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, parcelIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockTrackingHistoryRepository struct{ mock.Mock }

func (m *MockTrackingHistoryRepository) Append(ctx context.Context, event *tracking.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockTrackingHistoryRepository) ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]*tracking.Event, error) {
	args := m.Called(ctx, parcelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*tracking.Event), args.Error(1)
}

type MockStaffDirectory struct{ mock.Mock }

func (m *MockStaffDirectory) ShipperByEmail(ctx context.Context, email string) (ports.ShipperRecord, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(ports.ShipperRecord), args.Error(1)
}

func (m *MockStaffDirectory) DriverIsEligible(ctx context.Context, driverID kernel.UUID) (bool, error) {
	args := m.Called(ctx, driverID)
	return args.Bool(0), args.Error(1)
}

// MockUoW satisfies both commands.DemandUoW and commands.UoW so one mock
// serves every handler test.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) DemandRepository() ports.DemandRepository {
	args := m.Called()
	return args.Get(0).(ports.DemandRepository)
}

func (m *MockUoW) PickupMissionRepository() ports.PickupMissionRepository {
	args := m.Called()
	return args.Get(0).(ports.PickupMissionRepository)
}

func (m *MockUoW) DeliveryMissionRepository() ports.DeliveryMissionRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryMissionRepository)
}

func (m *MockUoW) TrackingHistoryRepository() ports.TrackingHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingHistoryRepository)
}

func (m *MockUoW) StaffDirectory() ports.StaffDirectory {
	args := m.Called()
	return args.Get(0).(ports.StaffDirectory)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockDemandUoWFactory struct{ mock.Mock }

func (m *MockDemandUoWFactory) Create() commands.DemandUoW {
	args := m.Called()
	return args.Get(0).(commands.DemandUoW)
}
