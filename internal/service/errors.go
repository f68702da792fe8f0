// Package service implements the booking admission engine: the rule
// chains that decide whether a class can be created or a booking can
// be committed. This file defines one sentinel error per rule so
// handlers can map each violation to a caller-visible response with
// errors.Is. All of these are validation or business-rule failures:
// they are reported without any state change and are safe to retry.
package service

import "errors"

// ErrMissingField is returned when a required request field is absent
// or blank after trimming.
var ErrMissingField = errors.New("missing required fields")

// ErrInvalidEmail is returned when an email does not match the
// accepted local-part@domain shape.
var ErrInvalidEmail = errors.New("invalid email format")

// ErrEmptyUserName is returned when the user name is empty after
// trimming whitespace.
var ErrEmptyUserName = errors.New("user name cannot be empty")

// ErrInvalidClassType is returned when the class name is outside the
// allowed enumeration.
var ErrInvalidClassType = errors.New("invalid class type, must be Yoga, Zumba or HIIT")

// ErrInvalidCapacity is returned when a class is created with a
// non-positive capacity.
var ErrInvalidCapacity = errors.New("capacity must be positive")

// ErrInvalidDateFormat is returned when a start time cannot be parsed
// as ISO 8601.  Distinct from ErrPastSchedule: unparseable input never
// reaches the temporal rule.
var ErrInvalidDateFormat = errors.New("invalid date format, use ISO format (e.g. 2025-06-07T15:00:00)")

// ErrPastSchedule is returned when a class is created with a start
// time that is not strictly in the future.
var ErrPastSchedule = errors.New("cannot schedule class in the past")

// ErrPastClass is returned when booking a class whose start time has
// already passed.  A class starting exactly now is still bookable.
var ErrPastClass = errors.New("cannot book a past class")
