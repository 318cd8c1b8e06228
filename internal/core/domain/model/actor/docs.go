// Package actor models the authenticated identity an operation runs as and
// the capability table that replaces scattered role-name comparisons.
//
// The surrounding application authenticates users and supplies an identity
// plus role per request. This package resolves that role to a fixed set of
// capabilities exactly once; business code checks capabilities, never role
// strings.
package actor
