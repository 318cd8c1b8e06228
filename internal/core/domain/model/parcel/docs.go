// Package parcel provides the aggregate root and status machine for a single
// shippable unit tracked end-to-end.
//
// The package includes:
//   - Parcel: the aggregate root owning identity, status and the single-use
//     delivery code pair
//   - Status: the parcel status machine with an explicit legal-edge table
//   - Outcome: the result of matching a supplied delivery code
//
// Key business rules:
//   - Status only moves along explicit edges; illegal transitions are
//     rejected, never coerced
//   - The success/failure code pair is installed at delivery-mission
//     assignment, compared case-insensitively, and consumed on resolution
//   - Terminal states (DeliveredPaid, ReturnedToSender) have no outgoing edges
package parcel
