package queries

import (
	"context"

	"dispatch/internal/core/domain/model/parcel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackParcelQueryHandler serves the public tracking view straight from
// the parcels table and the history log.
type TrackParcelQueryHandler struct {
	db *gorm.DB
}

// NewTrackParcelQueryHandler creates a handler for tracking queries.
func NewTrackParcelQueryHandler(db *gorm.DB) TrackParcelQueryHandler {
	return TrackParcelQueryHandler{db: db}
}

// Handle resolves the tracking code and returns status plus the full
// history, oldest entry first.
func (h TrackParcelQueryHandler) Handle(
	ctx context.Context,
	query TrackParcelQuery,
) (TrackParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	var row struct {
		ID     uuid.UUID
		Status int
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, status
		FROM parcels
		WHERE tracking_code = ?
	`, query.TrackingCode().String()).Scan(&row).Error
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}
	if row.ID == uuid.Nil {
		return TrackParcelQueryResponse{},
			errs.NewObjectNotFoundError("trackingCode", query.TrackingCode().String())
	}

	resp := TrackParcelQueryResponse{
		TrackingCode: query.TrackingCode().String(),
		Status:       parcel.Status(row.Status).String(),
		History:      make([]TrackingHistoryEntry, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT from_status, to_status, mission_kind, note, occurred_at
		FROM parcel_tracking_history
		WHERE parcel_id = ?
		ORDER BY occurred_at, id
	`, row.ID).Rows()
	if err != nil {
		return TrackParcelQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry TrackingHistoryEntry
		var fromStatus, toStatus int
		if err := rows.Scan(
			&fromStatus, &toStatus, &entry.MissionKind, &entry.Note, &entry.OccurredAt,
		); err != nil {
			return TrackParcelQueryResponse{}, err
		}
		// Intake rows have no prior status.
		if fromStatus != int(parcel.UnknownStatus) {
			entry.FromStatus = parcel.Status(fromStatus).String()
		}
		entry.ToStatus = parcel.Status(toStatus).String()
		resp.History = append(resp.History, entry)
	}
	if err := rows.Err(); err != nil {
		return TrackParcelQueryResponse{}, err
	}

	return resp, nil
}
