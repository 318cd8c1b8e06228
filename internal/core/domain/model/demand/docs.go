// Package demand provides the aggregate root for a shipper's batch pickup
// request and its review state machine.
//
// A demand groups a shipper's pending parcels for agency review. Each parcel
// belongs to at most one open demand (Pending or Accepted); accepting a
// demand authorizes a dispatcher to consume it into a pickup mission, after
// which it is Completed and immutable.
package demand
