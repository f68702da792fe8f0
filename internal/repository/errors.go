// Package repository defines sentinel error values shared across the
// data access layer. These allow higher layers such as the admission
// service and handlers to distinguish failure scenarios with
// errors.Is instead of string matching. ErrClassFull and
// ErrAlreadyBooked are also the commit-time re-validation results:
// the booking insert re-checks both invariants inside its
// transaction, so a request that passed the pre-checks can still
// surface them after losing a race.
package repository

import "errors"

// ErrClassNotFound is returned when no class exists for the given ID.
// Handlers translate this into an HTTP 404 response.
var ErrClassNotFound = errors.New("class not found")

// ErrClassFull is returned when a booking would exceed the class
// capacity. Handlers translate this into an HTTP 400 response.
var ErrClassFull = errors.New("class is fully booked")

// ErrAlreadyBooked is returned when the same email already holds a
// booking for the class. Handlers translate this into an HTTP 400
// response.
var ErrAlreadyBooked = errors.New("user already booked this class")
