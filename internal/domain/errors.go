package domain

import "errors"

// Sentinel errors returned by services; the API layer maps these to
// response codes with errors.Is.
var (
	// ErrNotFound indicates a route, waypoint, employee, bin, complaint,
	// or performance record id that does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState indicates an operation on an entity whose current
	// status does not permit it (e.g. completing a completed route).
	ErrInvalidState = errors.New("invalid state")
)
