package booking

import (
    "fmt"

    "github.com/iliyamo/classroom-reservation/internal/model"
)

// A ruleFunc checks one reservation kind's eligibility against the
// target room.  Rules are pure: no side effects, no clock, no store
// access.  They are keyed by kind so a new reservation kind only adds a
// map entry; existing kinds stay untouched.
type ruleFunc func(room model.Room, r model.Reservation) error

var rules = map[model.ReservationKind]ruleFunc{
    model.KindClass:     classRule,
    model.KindEvent:     eventRule,
    model.KindPractical: practicalRule,
}

// checkRules dispatches to the candidate kind's rule.  Unknown kinds are
// rejected as rule violations rather than silently admitted.
func checkRules(room model.Room, r model.Reservation) error {
    rule, ok := rules[r.Kind]
    if !ok {
        return fmt.Errorf("%w: unknown reservation kind %q", ErrRuleViolation, r.Kind)
    }
    return rule(room, r)
}

// classRule admits classes in theoretical rooms and laboratories only,
// and requires the room to hold the expected students.
func classRule(room model.Room, r model.Reservation) error {
    if room.Type == model.RoomAuditorium {
        return fmt.Errorf("%w: classes may only be booked in THEORETICAL or LABORATORY rooms", ErrRuleViolation)
    }
    if r.Students > room.Capacity {
        return fmt.Errorf("%w: room %s holds %d, %d required", ErrRuleViolation, room.Code, room.Capacity, r.Students)
    }
    return nil
}

// eventRule requires conferences and workshops to run in an auditorium
// or a laboratory; meetings may use any room type.  Capacity bounds the
// expected attendees for every category.
func eventRule(room model.Room, r model.Reservation) error {
    if r.Category == model.EventConference || r.Category == model.EventWorkshop {
        if room.Type != model.RoomAuditorium && room.Type != model.RoomLaboratory {
            return fmt.Errorf("%w: conferences and workshops may only be booked in AUDITORIUM or LABORATORY rooms", ErrRuleViolation)
        }
    }
    if r.Attendees > room.Capacity {
        return fmt.Errorf("%w: room %s holds %d, %d required", ErrRuleViolation, room.Code, room.Capacity, r.Attendees)
    }
    return nil
}

// practicalRule restricts practical sessions to laboratories.  The
// equipment count is recorded but deliberately unbounded: rooms carry no
// equipment capacity to check it against.
func practicalRule(room model.Room, r model.Reservation) error {
    if room.Type != model.RoomLaboratory {
        return fmt.Errorf("%w: practical sessions may only be booked in LABORATORY rooms", ErrRuleViolation)
    }
    return nil
}
