package booking

import (
    "fmt"

    "github.com/iliyamo/classroom-reservation/internal/model"
)

// checkConflictLocked validates a candidate interval for a room/date
// pair.  It rejects inverted or empty intervals, dates before the
// clock's current day, and any overlap with an active reservation on
// the same room and date.  excludeID (when non-empty) skips the record
// being modified so a reservation never conflicts with its own
// soon-to-be-replaced interval.  Callers must hold the lock.
//
// Overlap is half-open interval overlap: [s1,e1) and [s2,e2) overlap
// iff s1 < e2 && s2 < e1.  Back-to-back intervals therefore never
// conflict.
func (s *Store) checkConflictLocked(roomCode string, date model.Date, start, end model.TimeOfDay, excludeID string) error {
    if start >= end {
        return fmt.Errorf("%w: %s-%s", ErrTimeOrderInvalid, start, end)
    }
    if date.Before(model.DateOf(s.clock.Now()).Time) {
        return fmt.Errorf("%w: %s", ErrPastDate, date)
    }
    for _, r := range s.reservations {
        if r.Status != model.StatusActive {
            continue
        }
        if excludeID != "" && r.ID == excludeID {
            continue
        }
        if r.RoomCode != roomCode || !r.Date.Equal(date.Time) {
            continue
        }
        if start < r.End && r.Start < end {
            // First overlapping match wins; overlap is boolean, not ranked.
            return fmt.Errorf("%w: room %s is already booked on %s", ErrScheduleConflict, roomCode, date)
        }
    }
    return nil
}
