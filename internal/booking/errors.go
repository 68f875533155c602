// Package booking implements the reservation core: the room registry,
// the per-kind eligibility rules, the schedule conflict detector, the
// reservation store and the report aggregations.  All state is held in
// memory behind one mutex; persistence is written through after every
// successful mutation via the storage boundary.
//
// This file defines the sentinel error kinds shared across the package.
// Callers distinguish failure modes with errors.Is; the wrapped messages
// carry the human-readable detail (rule reason, conflicting room and
// date). Handlers translate the sentinels into HTTP status codes.
package booking

import "errors"

// ErrDuplicateCode is returned when registering a room whose code
// (case-insensitive) already exists.
var ErrDuplicateCode = errors.New("duplicate room code")

// ErrInvalidCapacity is returned when a room capacity is zero or
// negative.
var ErrInvalidCapacity = errors.New("capacity must be positive")

// ErrRoomNotFound is returned when a reservation references a room code
// that is not in the registry.
var ErrRoomNotFound = errors.New("room not found")

// ErrRuleViolation is returned when a reservation fails its kind's
// room-type or capacity eligibility rule.
var ErrRuleViolation = errors.New("reservation rule violation")

// ErrTimeOrderInvalid is returned when a start time is not strictly
// before its end time.
var ErrTimeOrderInvalid = errors.New("start time must precede end time")

// ErrPastDate is returned when a reservation date lies before the
// current date.
var ErrPastDate = errors.New("reservation date is in the past")

// ErrScheduleConflict is returned when a candidate interval overlaps an
// active reservation on the same room and date.
var ErrScheduleConflict = errors.New("schedule conflict")

// ErrNotFound is returned when a reservation id does not exist.
var ErrNotFound = errors.New("reservation not found")

// ErrAlreadyCancelled is returned when cancelling or modifying a
// reservation that is already cancelled.  Cancelled is terminal.
var ErrAlreadyCancelled = errors.New("reservation already cancelled")
