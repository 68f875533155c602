// Package storage defines the persistence boundary of the reservation
// service.  The booking core treats persistence as a collaborator: it
// loads both collections once at startup and writes the full collections
// back after every successful mutation.  A save failure never rolls back
// an in-memory mutation; callers log it and carry on.
package storage

import (
    "fmt"

    "github.com/iliyamo/classroom-reservation/internal/model"
)

// Store is the contract between the booking core and a persistence
// backend.  Load methods return empty collections (not an error) when no
// backing data exists yet.  Save methods overwrite the full collection.
type Store interface {
    LoadRooms() ([]model.Room, error)
    LoadReservations() ([]model.Reservation, error)
    SaveRooms(rooms []model.Room) error
    SaveReservations(reservations []model.Reservation) error
    // ExportReport persists a generated report body under the given name.
    // Failures are reported to the caller but must not prevent the report
    // text from being returned to the requester.
    ExportReport(name, body string) error
}

// payloadOf flattens the kind-specific payload of a reservation into a
// detail string and a quantity, the shape shared by the CSV columns and
// the SQL columns.
func payloadOf(r model.Reservation) (detail string, quantity int) {
    switch r.Kind {
    case model.KindClass:
        return r.Subject, r.Students
    case model.KindEvent:
        return string(r.Category), r.Attendees
    case model.KindPractical:
        return r.Description, r.Equipment
    }
    return "", 0
}

// applyPayload is the inverse of payloadOf: it assigns detail and
// quantity to the payload fields matching the reservation's kind.
func applyPayload(r *model.Reservation, detail string, quantity int) error {
    switch r.Kind {
    case model.KindClass:
        r.Subject = detail
        r.Students = quantity
    case model.KindEvent:
        cat, err := model.ParseEventCategory(detail)
        if err != nil {
            return err
        }
        r.Category = cat
        r.Attendees = quantity
    case model.KindPractical:
        r.Description = detail
        r.Equipment = quantity
    default:
        return fmt.Errorf("unknown reservation kind %q", r.Kind)
    }
    return nil
}
