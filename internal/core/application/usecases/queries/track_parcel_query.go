// Package queries contains read-side operations. Query handlers bypass
// the aggregate layer and read projections straight from the database
// with raw SQL, keeping the read path free of write-side invariants.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrTrackParcelQueryIsNotConstructed = errors.New(
	"TrackParcelQuery must be created via NewTrackParcelQuery constructor",
)

// TrackParcelQuery retrieves the public tracking view of a parcel: its
// current status and the full ordered history. Keyed by tracking code,
// never by internal id, this is the one read exposed to recipients.
type TrackParcelQuery struct {
	trackingCode kernel.TrackingCode

	guard guard.ConstructorGuard
}

// NewTrackParcelQuery creates a tracking query for one parcel.
func NewTrackParcelQuery(trackingCode kernel.TrackingCode) (TrackParcelQuery, error) {
	if err := trackingCode.Validate(); err != nil {
		return TrackParcelQuery{}, err
	}
	return TrackParcelQuery{
		trackingCode: trackingCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackParcelQuery) Validate() error {
	return q.guard.Validate(ErrTrackParcelQueryIsNotConstructed)
}

// TrackingCode returns the code being tracked.
func (q TrackParcelQuery) TrackingCode() kernel.TrackingCode {
	return q.trackingCode
}

// TrackParcelQueryResponse is the public tracking projection.
type TrackParcelQueryResponse struct {
	TrackingCode string
	Status       string
	History      []TrackingHistoryEntry
}

// TrackingHistoryEntry is one recorded status change, oldest first.
type TrackingHistoryEntry struct {
	FromStatus  string
	ToStatus    string
	MissionKind string
	Note        string
	OccurredAt  time.Time
}
