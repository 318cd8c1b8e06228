package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDepotParcelsQueryHandler lists delivery-eligible parcels at one
// depot. A parcel already linked to a live delivery mission is filtered
// out even though its status is depot-held; the exclusivity rule is
// ultimately enforced inside the creation transaction, this read just
// keeps the picklist honest.
type GetDepotParcelsQueryHandler struct {
	db *gorm.DB
}

func NewGetDepotParcelsQueryHandler(db *gorm.DB) GetDepotParcelsQueryHandler {
	return GetDepotParcelsQueryHandler{db: db}
}

func (h GetDepotParcelsQueryHandler) Handle(
	ctx context.Context,
	query GetDepotParcelsQuery,
) ([]GetDepotParcelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	parcels := make([]GetDepotParcelsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT p.id, p.tracking_code, p.status
		FROM parcels p
		WHERE p.warehouse_id = ?
		  AND p.status IN (?, ?)
		  AND NOT EXISTS (
			SELECT 1
			FROM mission_parcels mp
			JOIN delivery_missions dm ON dm.id = mp.mission_id
			WHERE mp.parcel_id = p.id
			  AND mp.mission_kind = 'delivery'
			  AND dm.status = ?
		  )
		ORDER BY p.tracking_code
	`, query.WarehouseID().Bytes(),
		int(parcel.AtDepot), int(parcel.ReturnedToDepot),
		int(mission.DeliveryScheduled)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetDepotParcelsQueryResponse
		var id uuid.UUID
		var status int
		if err := rows.Scan(&id, &resp.TrackingCode, &status); err != nil {
			return nil, err
		}

		parcelID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = parcelID
		resp.Status = parcel.Status(status).String()
		parcels = append(parcels, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
