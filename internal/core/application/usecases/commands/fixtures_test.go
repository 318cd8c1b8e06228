package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/actor"
	"dispatch/internal/core/domain/model/demand"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/mission"
	"dispatch/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/require"
)

func mustActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func parcelInStatus(t *testing.T, status parcel.Status) *parcel.Parcel {
	t.Helper()
	code, err := kernel.NewTrackingCode()
	require.NoError(t, err)
	p, err := parcel.RestoreParcel(kernel.NewUUID(), code, kernel.NewUUID(), status, nil, nil, nil)
	require.NoError(t, err)
	return p
}

func demandInStatus(t *testing.T, status demand.Status, parcelIDs ...kernel.UUID) *demand.Demand {
	t.Helper()
	if len(parcelIDs) == 0 {
		parcelIDs = []kernel.UUID{kernel.NewUUID()}
	}
	d, err := demand.RestoreDemand(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), status, nil, nil, "", parcelIDs)
	require.NoError(t, err)
	return d
}

func pickupMissionInStatus(
	t *testing.T, status mission.PickupStatus, parcelIDs ...kernel.UUID,
) *mission.PickupMission {
	t.Helper()
	if len(parcelIDs) == 0 {
		parcelIDs = []kernel.UUID{kernel.NewUUID()}
	}
	m, err := mission.RestorePickupMission(
		kernel.NewUUID(), "PM-2026-0001", kernel.NewUUID(), status, "CFG7HK",
		time.Now().UTC(), kernel.NewUUID(), "",
		[]kernel.UUID{kernel.NewUUID()}, parcelIDs)
	require.NoError(t, err)
	return m
}

func scheduledDeliveryMission(t *testing.T, parcelIDs ...kernel.UUID) *mission.DeliveryMission {
	t.Helper()
	if len(parcelIDs) == 0 {
		parcelIDs = []kernel.UUID{kernel.NewUUID()}
	}
	m, err := mission.NewDeliveryMission(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		time.Now().UTC(), kernel.NewUUID(), "", parcelIDs)
	require.NoError(t, err)
	return m
}
