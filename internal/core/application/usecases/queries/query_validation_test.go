package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackParcelQuery_Valid(t *testing.T) {
	code, err := kernel.NewTrackingCode()
	require.NoError(t, err)

	query, err := queries.NewTrackParcelQuery(code)
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
}

func TestNewTrackParcelQuery_EmptyCode(t *testing.T) {
	_, err := queries.NewTrackParcelQuery(kernel.TrackingCode{})
	require.Error(t, err)
}

func TestTrackParcelQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.TrackParcelQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrTrackParcelQueryIsNotConstructed)
}

func TestNewGetPickupMissionQuery_Valid(t *testing.T) {
	query, err := queries.NewGetPickupMissionQuery(kernel.NewUUID())
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
}

func TestNewGetPickupMissionQuery_EmptyID(t *testing.T) {
	_, err := queries.NewGetPickupMissionQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetPickupMissionQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPickupMissionQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPickupMissionQueryIsNotConstructed)
}

func TestNewGetMissionSecurityCodeQuery_Valid(t *testing.T) {
	dispatcher, err := actor.NewActor(kernel.NewUUID(), actor.Dispatcher)
	require.NoError(t, err)

	query, err := queries.NewGetMissionSecurityCodeQuery(kernel.NewUUID(), dispatcher)
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
}

func TestNewGetMissionSecurityCodeQuery_EmptyRequester(t *testing.T) {
	_, err := queries.NewGetMissionSecurityCodeQuery(kernel.NewUUID(), actor.Actor{})
	require.Error(t, err)
}

func TestGetMissionSecurityCodeQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetMissionSecurityCodeQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetMissionSecurityCodeQueryIsNotConstructed)
}

func TestNewGetDepotParcelsQuery_Valid(t *testing.T) {
	query, err := queries.NewGetDepotParcelsQuery(kernel.NewUUID())
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
}

func TestNewGetDepotParcelsQuery_EmptyWarehouse(t *testing.T) {
	_, err := queries.NewGetDepotParcelsQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetDepotParcelsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDepotParcelsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDepotParcelsQueryIsNotConstructed)
}
