package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
)

// TrackingHistoryRepository defines the persistence contract for the
// append-only parcel transition log. There is no update or delete: history
// records are written exactly once per transition.
type TrackingHistoryRepository interface {
	// Append writes one history event.
	Append(ctx context.Context, event *tracking.Event) error

	// ListByParcel retrieves a parcel's events oldest first.
	ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]*tracking.Event, error)
}
