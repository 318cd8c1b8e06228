package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
)

// PickupMissionRepository defines the persistence contract for pickup
// mission aggregates and their demand/parcel links.
type PickupMissionRepository interface {
	// Add persists a new mission with its demand and parcel links.
	Add(ctx context.Context, aggregate *mission.PickupMission) error

	// Update persists changes to an existing mission.
	Update(ctx context.Context, aggregate *mission.PickupMission) error

	// Get retrieves a mission by its unique identifier, links included.
	Get(ctx context.Context, id kernel.UUID) (*mission.PickupMission, error)

	// GetByNumber retrieves a mission by its human-readable number.
	GetByNumber(ctx context.Context, number string) (*mission.PickupMission, error)

	// ActiveMissionNumbersByDemand returns, for each of the given demand
	// ids that is linked to a mission in the active set (Pending, Accepted,
	// PickedUp), the number of that mission. Demands with no active link
	// are absent from the map. Must be queried inside the creation
	// transaction to close the race between two dispatchers consuming
	// overlapping demand sets.
	ActiveMissionNumbersByDemand(ctx context.Context, demandIDs []kernel.UUID) (map[kernel.UUID]string, error)

	// SecurityCodeExists checks the completion-code column for a candidate.
	SecurityCodeExists(ctx context.Context, code string) (bool, error)

	// NextMissionSequence returns the next per-year sequence for building
	// a mission number.
	NextMissionSequence(ctx context.Context, year int) (int, error)

	// GetAllOverdue retrieves missions still Pending whose scheduled time
	// lies before the cutoff.
	GetAllOverdue(ctx context.Context, cutoff time.Time) ([]*mission.PickupMission, error)
}

// DeliveryMissionRepository defines the persistence contract for delivery
// mission aggregates and their sequenced parcel links.
type DeliveryMissionRepository interface {
	// Add persists a new mission with its parcel links.
	Add(ctx context.Context, aggregate *mission.DeliveryMission) error

	// Update persists changes to an existing mission, link states included.
	Update(ctx context.Context, aggregate *mission.DeliveryMission) error

	// Get retrieves a mission by its unique identifier, links included.
	Get(ctx context.Context, id kernel.UUID) (*mission.DeliveryMission, error)

	// ActiveMissionParcelIDs returns the subset of the given parcel ids
	// that are linked to a delivery mission that is not terminal. Must be
	// queried inside the creation transaction.
	ActiveMissionParcelIDs(ctx context.Context, parcelIDs []kernel.UUID) ([]kernel.UUID, error)
}
