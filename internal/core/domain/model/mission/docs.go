// Package mission provides the aggregate roots for driver assignments:
// pickup missions consolidating accepted demands, and delivery missions
// consolidating depot-held parcels.
//
// The package includes:
//   - PickupMission with its explicit status machine and the persisted-random
//     completion security code
//   - DeliveryMission with sequence-ordered parcel links whose resolution
//     state derives the mission status
//
// Key business rules:
//   - A demand belongs to at most one active pickup mission; a parcel to at
//     most one non-terminal delivery mission
//   - Completion and outcome codes are single-use and compared
//     case-insensitively; a mismatch leaks nothing beyond the mismatch itself
package mission
