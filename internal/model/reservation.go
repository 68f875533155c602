package model

import (
    "fmt"
    "strings"
)

// ReservationKind discriminates the three reservation variants.  Each
// kind carries its own payload fields on Reservation and its own
// eligibility rule; adding a new kind means adding a constant, its
// payload fields and a rule function, nothing else.
type ReservationKind string

const (
    KindClass     ReservationKind = "CLASS"
    KindEvent     ReservationKind = "EVENT"
    KindPractical ReservationKind = "PRACTICAL"
)

// ParseReservationKind converts a case-insensitive string into a
// ReservationKind.
func ParseReservationKind(s string) (ReservationKind, error) {
    switch ReservationKind(strings.ToUpper(strings.TrimSpace(s))) {
    case KindClass:
        return KindClass, nil
    case KindEvent:
        return KindEvent, nil
    case KindPractical:
        return KindPractical, nil
    }
    return "", fmt.Errorf("unknown reservation kind %q", s)
}

// EventCategory classifies event reservations.  Conferences and
// workshops carry a stricter room-type rule than meetings.
type EventCategory string

const (
    EventConference EventCategory = "CONFERENCE"
    EventWorkshop   EventCategory = "WORKSHOP"
    EventMeeting    EventCategory = "MEETING"
)

// ParseEventCategory converts a case-insensitive string into an
// EventCategory.
func ParseEventCategory(s string) (EventCategory, error) {
    switch EventCategory(strings.ToUpper(strings.TrimSpace(s))) {
    case EventConference:
        return EventConference, nil
    case EventWorkshop:
        return EventWorkshop, nil
    case EventMeeting:
        return EventMeeting, nil
    }
    return "", fmt.Errorf("unknown event category %q", s)
}

// ReservationStatus is the lifecycle state of a reservation.  The only
// transition is active -> cancelled; cancelled is terminal and records
// are never deleted.
type ReservationStatus string

const (
    StatusActive    ReservationStatus = "active"
    StatusCancelled ReservationStatus = "cancelled"
)

// ParseReservationStatus converts a case-insensitive string into a
// ReservationStatus.
func ParseReservationStatus(s string) (ReservationStatus, error) {
    switch ReservationStatus(strings.ToLower(strings.TrimSpace(s))) {
    case StatusActive:
        return StatusActive, nil
    case StatusCancelled:
        return StatusCancelled, nil
    }
    return "", fmt.Errorf("unknown reservation status %q", s)
}

// Reservation is a time-bounded booking of one room by one responsible
// party.  The room is referenced by code only; it is resolved against
// the room registry whenever room attributes are needed, so a
// reservation never owns its room.
//
// The kind-specific payload lives in the tail fields; only the fields
// matching Kind are meaningful:
//  CLASS     – Subject, Students.
//  EVENT     – Category, Attendees.
//  PRACTICAL – Description, Equipment.
type Reservation struct {
    ID          string            `json:"id"`
    RoomCode    string            `json:"room_code"`
    Date        Date              `json:"date"`
    Start       TimeOfDay         `json:"start"`
    End         TimeOfDay         `json:"end"`
    Responsible string            `json:"responsible"`
    Status      ReservationStatus `json:"status"`
    Kind        ReservationKind   `json:"kind"`

    Subject  string `json:"subject,omitempty"`  // CLASS: subject name
    Students int    `json:"students,omitempty"` // CLASS: expected student count

    Category  EventCategory `json:"category,omitempty"`  // EVENT: event category
    Attendees int           `json:"attendees,omitempty"` // EVENT: expected attendee count

    Description string `json:"description,omitempty"` // PRACTICAL: description text
    Equipment   int    `json:"equipment,omitempty"`   // PRACTICAL: required equipment count
}

// Minutes returns the reserved duration in minutes.  Intervals are
// half-open so back-to-back reservations contribute independent spans.
func (r Reservation) Minutes() int {
    return int(r.End) - int(r.Start)
}
